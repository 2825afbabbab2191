package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers notification mail through the Resend API.
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailSender) SendVerificationCode(ctx context.Context, email string, code string) error {
	subject := "Your verification code"
	text := fmt.Sprintf("Your verification code is %s. Please do not share this with anyone.", code)
	html := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>Please do not share this with anyone.</p>", code)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) SendResetLink(ctx context.Context, email string, link string) error {
	subject := "Reset your password"
	text := fmt.Sprintf("Reset your password: %s", link)
	html := fmt.Sprintf("<p>Click to reset your password:</p><p><a href=%q>Reset Password</a></p>", link)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, html string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
