package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/model"
)

const dateLayout = "2006-01-02"

type messageResponse struct {
	Message string `json:"message"`
}

// userView is the public projection of a user; the password hash never leaves the service.
type userView struct {
	ID          uuid.UUID `json:"id"`
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	PhotoURL    string    `json:"photoUrl"`
}

func newUserView(u model.User) userView {
	return userView{
		ID:          u.ID,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.Photo,
	}
}

type transactionView struct {
	ID         uuid.UUID             `json:"id"`
	Amount     int64                 `json:"amount"`
	Type       model.TransactionType `json:"type"`
	Category   int                   `json:"category"`
	Date       string                `json:"date"`
	Notes      string                `json:"notes"`
	HasReceipt bool                  `json:"hasReceipt"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

func newTransactionView(t model.Transaction) transactionView {
	return transactionView{
		ID:         t.ID,
		Amount:     t.Amount,
		Type:       t.Type,
		Category:   t.Category,
		Date:       t.Date.Format(dateLayout),
		Notes:      t.Notes,
		HasReceipt: t.ReceiptKey != "",
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
