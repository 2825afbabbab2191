package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogEmailSender writes codes and links to the log instead of sending mail.
// Used when no Resend API key is configured.
type LogEmailSender struct {
	Logger *logrus.Logger
}

func (s LogEmailSender) SendVerificationCode(_ context.Context, email string, code string) error {
	s.logger().WithFields(logrus.Fields{"email": email, "code": code}).Info("verification code issued")
	return nil
}

func (s LogEmailSender) SendResetLink(_ context.Context, email string, link string) error {
	s.logger().WithFields(logrus.Fields{"email": email, "link": link}).Info("password reset link issued")
	return nil
}

func (s LogEmailSender) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
