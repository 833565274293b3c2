package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPSender entrega claves de producto por SMTP.
// Con useTLS la conexión es TLS implícito (puerto 465); si no, STARTTLS cuando el servidor lo ofrece.
type SMTPSender struct {
	addr   string
	host   string
	auth   smtp.Auth
	from   mail.Address
	useTLS bool
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPSender, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, errors.New("smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	s := &SMTPSender{
		addr:   net.JoinHostPort(host, strconv.Itoa(port)),
		host:   host,
		from:   mail.Address{Name: strings.TrimSpace(fromName), Address: from},
		useTLS: useTLS,
	}
	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s, nil
}

func (s *SMTPSender) SendProductKey(ctx context.Context, toEmail string, role string, key string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return errors.New("to email is required")
	}
	msg := productKeyMessage(s.from, toEmail, role, key)
	if err := s.deliver(ctx, toEmail, msg.bytes()); err != nil {
		return fmt.Errorf("send product key: %w", err)
	}
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, to string, raw []byte) error {
	if !s.useTLS {
		return smtp.SendMail(s.addr, s.auth, s.from.Address, []string{to}, raw)
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return err
		}
	}
	if err := client.Mail(s.from.Address); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

type message struct {
	from    mail.Address
	to      string
	subject string
	body    string
}

func productKeyMessage(from mail.Address, to, role, key string) message {
	return message{
		from:    from,
		to:      to,
		subject: "Your product key",
		body: fmt.Sprintf(
			"Use this product key to sign up as %s:\n\n%s\n\nThe key only works for this email address.\n",
			role, key,
		),
	}
}

func (m message) bytes() []byte {
	var b strings.Builder
	from := m.from.Address
	if m.from.Name != "" {
		from = m.from.String()
	}
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(m.body)
	return []byte(b.String())
}
