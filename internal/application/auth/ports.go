package auth

import "context"

// Mailer envía correos HTML. Lo implementa infrastructure/email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}
