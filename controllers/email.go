package controllers

import (
	"fmt"
	"os"

	"github.com/go-gomail/gomail"
)

// Mailer delivers auth-related mail.
type Mailer interface {
	SendPasswordResetEmail(to, token string) error
}

// SMTPMailer sends mail through the configured SMTP account.
type SMTPMailer struct{}

// SendPasswordResetEmail mails the reset token to the account owner.
func (SMTPMailer) SendPasswordResetEmail(to, token string) error {
	senderEmail := os.Getenv("Email")
	senderPassword := os.Getenv("Password")

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset request")
	m.SetBody("text/plain", "Use this token to reset your password within 24 hours: "+token)

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
