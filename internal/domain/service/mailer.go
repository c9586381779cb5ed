package service

import "context"

// Mailer delivers transactional mail. Implementations must be safe for
// concurrent use; delivery failures are returned, never retried here.
type Mailer interface {
	// SendVerificationMail sends the email-verification link for token to the address.
	SendVerificationMail(ctx context.Context, email, token string) error
}
