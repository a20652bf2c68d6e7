package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends a plain-text mail through the SMTP relay configured via
// SMTP_HOST / SMTP_PORT / EMAIL_USER / EMAIL_PASS.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 465
	}
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")

	m := gomail.NewMessage()
	m.SetHeader("From", user)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, user, pass)

	return d.DialAndSend(m)
}

// BuildOtpEmail renders the login OTP mail.
func BuildOtpEmail(otp string, expiresMinutes int) (subject string, body string) {
	subject = fmt.Sprintf("Login OTP (%d min)", expiresMinutes)
	body = fmt.Sprintf("Your login OTP is: %s\nThis OTP expires in %d minutes.\n\nIf you did not attempt to log in, you can ignore this email.", otp, expiresMinutes)
	return subject, body
}
