package model

import "context"

// Mailer delivers e-mail messages.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
