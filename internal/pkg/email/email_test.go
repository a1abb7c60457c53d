package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSendEnrollmentNoticeSkipsWithoutSMTP(t *testing.T) {
	s := NewEmailService(SMTPConfig{}, zerolog.Nop())
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("send must not be called when SMTP is not configured")
		return nil
	}
	if err := s.SendEnrollmentNotice(EnrollmentNotice{ToEmail: "a@x.com"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSendEnrollmentNoticeRendersMessage(t *testing.T) {
	s := NewEmailService(SMTPConfig{Host: "smtp.example.com", Port: 587, FromName: "Registrar", FromEmail: "office@example.com"}, zerolog.Nop())

	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := s.SendEnrollmentNotice(EnrollmentNotice{
		ToEmail:    "ann@x.com",
		ToName:     "Ann <Lee>",
		BatchName:  "B1",
		Courses:    []string{"Web Development", "Data Science"},
		StartDate:  "2024-01-01",
		Instructor: "Jane",
		RollNo:     "R1",
	})
	if err != nil {
		t.Fatalf("SendEnrollmentNotice: %v", err)
	}
	if gotAddr != "smtp.example.com:587" || len(gotTo) != 1 || gotTo[0] != "ann@x.com" {
		t.Fatalf("unexpected envelope %s %v", gotAddr, gotTo)
	}
	for _, want := range []string{
		"Subject: Enrollment confirmed - B1\r\n",
		"From: Registrar <office@example.com>\r\n",
		"Web Development, Data Science",
		"Ann &lt;Lee&gt;",
	} {
		if !strings.Contains(gotMsg, want) {
			t.Fatalf("expected %q in message:\n%s", want, gotMsg)
		}
	}
}

func TestSendEnrollmentNoticePropagatesFailure(t *testing.T) {
	s := NewEmailService(SMTPConfig{Host: "smtp.example.com", FromEmail: "office@example.com"}, zerolog.Nop())
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	if err := s.SendEnrollmentNotice(EnrollmentNotice{ToEmail: "a@x.com", BatchName: "B1"}); err == nil {
		t.Fatalf("expected error")
	}
}
