package email

import (
	"context"
	"net/mail"
	"strings"
	"testing"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "noreply@example.com", "", false); err == nil {
		t.Fatalf("expected error for missing host")
	}
	if _, err := NewSMTPSender("smtp.example.com", 587, "", "", "", "", false); err == nil {
		t.Fatalf("expected error for missing from")
	}
	s, err := NewSMTPSender("smtp.example.com", 0, "", "", "noreply@example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.addr != "smtp.example.com:587" {
		t.Fatalf("expected default port 587, got %s", s.addr)
	}
	if s.auth != nil {
		t.Fatalf("expected no auth without username")
	}
}

func TestSMTPSender_RejectsEmptyRecipient(t *testing.T) {
	s, err := NewSMTPSender("smtp.example.com", 587, "", "", "noreply@example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SendProductKey(context.Background(), " ", "REALTOR", "key"); err == nil {
		t.Fatalf("expected error for empty recipient")
	}
}

func TestProductKeyMessage(t *testing.T) {
	from := mail.Address{Name: "Realtor", Address: "noreply@example.com"}
	raw := string(productKeyMessage(from, "to@example.com", "ADMIN", "$2a$10$abc").bytes())

	if !strings.HasPrefix(raw, "From: \"Realtor\" <noreply@example.com>\r\n") {
		t.Fatalf("unexpected from header: %q", raw)
	}
	if !strings.Contains(raw, "To: to@example.com\r\n") {
		t.Fatalf("missing to header: %q", raw)
	}
	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	if !ok || !strings.Contains(head, "Subject: Your product key") {
		t.Fatalf("expected headers before a blank line: %q", raw)
	}
	if !strings.Contains(body, "sign up as ADMIN") || !strings.Contains(body, "$2a$10$abc") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestProductKeyMessage_BareFrom(t *testing.T) {
	raw := string(productKeyMessage(mail.Address{Address: "noreply@example.com"}, "to@example.com", "REALTOR", "k").bytes())
	if !strings.HasPrefix(raw, "From: noreply@example.com\r\n") {
		t.Fatalf("unexpected from header: %q", raw)
	}
}
