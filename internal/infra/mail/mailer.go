// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"tastebud/config"
	"tastebud/internal/domain/service"
	"tastebud/internal/errors"

	"go.uber.org/fx"
	"gopkg.in/gomail.v2"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	logger  *slog.Logger
}

// NewMailer builds the SMTP mailer from configuration.
func NewMailer(params Params) (service.Mailer, error) {
	mailCfg := params.Config.Mail
	if mailCfg == nil {
		return nil, errors.New("mail configuration is missing")
	}
	if mailCfg.Host == "" || mailCfg.From == "" {
		return nil, errors.New("mail.host and mail.from are required")
	}

	return &smtpMailer{
		dialer:  gomail.NewDialer(mailCfg.Host, mailCfg.Port, mailCfg.Username, mailCfg.Password),
		from:    mailCfg.From,
		baseURL: params.Config.HTTP.BaseURL,
		logger:  params.Logger,
	}, nil
}

// SendVerificationMail sends the verification link for token to the address.
// The ctx only gates entry; gomail dials synchronously and does not take a
// context.
func (m *smtpMailer) SendVerificationMail(ctx context.Context, email, token string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "send verification mail")
	}

	verifyURL := fmt.Sprintf("%s/auth/verify/%s", m.baseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify your email")
	msg.SetBody("text/html", verificationBody(verifyURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "verification mail delivery failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)

		return errors.Wrap(err, "failed to send verification mail")
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "verification mail sent",
		slog.String("email", email),
	)

	return nil
}

func verificationBody(verifyURL string) string {
	return fmt.Sprintf(`
    <html>
        <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
            <h1 style="color: #4a6ee0;">Welcome to TasteBud!</h1>
            <p>Thank you for registering. Please verify your email by clicking the link below:</p>
            <p>
                <a href="%[1]s" style="background-color: #4a6ee0; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">
                    Verify Email
                </a>
            </p>
            <p style="color: #666;">If the button doesn't work, copy and paste this URL into your browser:</p>
            <p style="color: #666; word-break: break-all;">%[1]s</p>
            <p style="color: #666; font-size: 0.8em; margin-top: 30px;">This link will expire in 24 hours.</p>
        </body>
    </html>`, verifyURL)
}
