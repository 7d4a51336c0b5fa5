package mailer

import (
	"github.com/rentora/rentora-api/pkg/logger"
)

// DevMailer logs codes instead of sending email. Default in dev mode.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendVerificationCode(toEmail, toName, code string) error {
	logger.Info("[DEV MAIL] Verification code",
		"to", toEmail,
		"name", toName,
		"code", code,
	)
	return nil
}
