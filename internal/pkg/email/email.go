package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendEnrollmentNotice(notice EnrollmentNotice) error
}

// EnrollmentNotice carries what the enrollment email shows.
type EnrollmentNotice struct {
	ToEmail    string
	ToName     string
	BatchName  string
	Courses    []string
	StartDate  string
	Instructor string
	RollNo     string
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// Enabled reports whether enough is configured to actually send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.FromEmail != ""
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	s := &EmailServiceImpl{
		config: config,
		logger: logger,
	}
	s.send = s.sendMail
	return s
}

var enrollmentTemplate = template.Must(template.New("enrollment").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}).Parse(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to {{.BatchName}}</h2>
				<p>Hello {{.ToName}},</p>
				<p>You have been enrolled in batch <strong>{{.BatchName}}</strong> with roll number <strong>{{.RollNo}}</strong>.</p>
				<p>Courses: {{join .Courses}}</p>
				<p>Classes start on {{.StartDate}} with {{.Instructor}}.</p>
				<p>Best regards,<br>The Registrar Office</p>
			</div>
		</body>
		</html>
`))

// SendEnrollmentNotice emails a student that they were added to a batch
func (s *EmailServiceImpl) SendEnrollmentNotice(n EnrollmentNotice) error {
	if !s.config.Enabled() {
		s.logger.Debug().
			Str("toEmail", n.ToEmail).
			Str("batch", n.BatchName).
			Msg("SMTP not configured - enrollment email not sent")
		return nil
	}

	var body bytes.Buffer
	if err := enrollmentTemplate.Execute(&body, n); err != nil {
		return fmt.Errorf("render enrollment email: %w", err)
	}
	subject := fmt.Sprintf("Enrollment confirmed - %s", n.BatchName)
	return s.sendHTMLEmail(n.ToEmail, subject, body.String())
}

// buildMessage assembles headers and body in a stable order.
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	message := s.buildMessage(toEmail, subject, htmlBody)

	if err := s.send(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendMail delivers over implicit TLS when UseTLS is set, otherwise through smtp.SendMail (STARTTLS when offered).
func (s *EmailServiceImpl) sendMail(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	if !s.config.UseTLS {
		return smtp.SendMail(addr, auth, from, to, msg)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
