package mail

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends transactional email over SMTP. When SMTP is not configured
// the mailer degrades to logging the message so local development works
// without a relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewMailer() *Mailer {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		fromName: "Helper Hub",
	}
}

func (m *Mailer) Configured() bool {
	return m.host != "" && m.from != ""
}

// SendVerificationCode delivers a sign-up confirmation code.
func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Verify your Helper Hub account"
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code)
	return m.send(ctx, to, subject, body)
}

// SendPasswordReset delivers a password reset code.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, code string) error {
	subject := "Reset your Helper Hub password"
	body := fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes. If you did not request this, ignore this email.", code)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.Configured() {
		log.Printf("mail: SMTP not configured, would send to %s: %s / %s", to, subject, body)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTimeout(10 * time.Second),
	}
	if m.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.username),
			gomail.WithPassword(m.password),
		)
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
