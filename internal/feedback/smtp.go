// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package feedback

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when no relay, sender or recipient is set.
var ErrNotConfigured = errors.New("feedback mail is not configured")

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers messages through an SMTP relay. The relay is expected to
// offer STARTTLS, as port 587 submission servers do.
type SMTPSender struct {
	From string
	To   string
	d    dialer
}

// NewSMTPSender builds a sender for host:port with optional credentials.
func NewSMTPSender(host string, port int, username, password, from, to string) (*SMTPSender, error) {
	if host == "" || from == "" || to == "" {
		return nil, ErrNotConfigured
	}
	return &SMTPSender{
		From: from,
		To:   to,
		d:    gomail.NewDialer(host, port, username, password),
	}, nil
}

// Send delivers msg. The SMTP exchange itself cannot be interrupted; a
// cancelled ctx only stops Send from waiting for it.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() { done <- s.d.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send feedback to %s: %w", s.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
