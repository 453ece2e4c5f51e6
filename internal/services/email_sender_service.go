package services

import "context"

type EmailSender interface {
	SendConfirmationEmail(ctx context.Context, toEmail, confirmURL string) error
}
