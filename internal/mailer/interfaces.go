package mailer

type Service interface {
	SendVerificationCode(toEmail, toName, code string) error
}
