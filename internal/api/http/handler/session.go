package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/model"
)

// sessionUserID reads the user id placed in the context by the authenticate middleware.
func sessionUserID(cm model.ContextManager, r *http.Request) (uuid.UUID, error) {
	session, ok := cm.GetSessionFromContext(r.Context())
	if !ok || session.UserID == uuid.Nil {
		return uuid.Nil, apierror.NewErrMissingAuthorizationToken()
	}
	return session.UserID, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apierror.NewErrInvalidTransactionID()
	}
	return id, nil
}
