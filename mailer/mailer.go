package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Message is one outbound mail. ReplyTo is optional.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer is the relay boundary. Transport, credentials and retries are
// the implementation's concern.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP settings. Built once in main and passed in, never
// read from globals.
type Config struct {
	Host    string
	Port    string
	User    string
	Pass    string
	From    string
	StaffTo string
}

// ConfigFromEnv builds the relay config from SMTP_* variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Host:    os.Getenv("SMTP_HOST"),
		Port:    os.Getenv("SMTP_PORT"),
		User:    os.Getenv("SMTP_USER"),
		Pass:    strings.ReplaceAll(os.Getenv("SMTP_PASS"), " ", ""),
		From:    os.Getenv("EMAIL_FROM"),
		StaffTo: os.Getenv("EMAIL_TO"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.StaffTo == "" {
		cfg.StaffTo = cfg.User
	}
	return cfg
}

// SMTP sends through a plain-auth SMTP relay.
type SMTP struct {
	cfg Config
}

func New(cfg Config) *SMTP {
	return &SMTP{cfg: cfg}
}

func (m *SMTP) Config() Config {
	return m.cfg
}

func (m *SMTP) Send(_ context.Context, msg Message) error {
	from := msg.From
	if from == "" {
		from = m.cfg.From
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Body)

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	return smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, from, []string{msg.To}, []byte(b.String()))
}
