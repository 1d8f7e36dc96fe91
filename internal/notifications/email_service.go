package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"time"
)

// EmailService delivers one notification over email.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

type smtpEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (EmailService, error) {
	if config == nil || config.Host == "" || config.Username == "" || config.FromEmail == "" {
		return nil, fmt.Errorf("SMTP configuration incomplete: host, username and from address are required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("SMTP port %d out of range", config.Port)
	}
	if config.FromName == "" {
		config.FromName = "Busly"
	}
	return &smtpEmailService{config: config}, nil
}

func (s *smtpEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody := renderContent(notification)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *smtpEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 Email sent to %s", to)
	return nil
}

func (s *smtpEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsConfig := &tls.Config{ServerName: s.config.Host}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func (s *smtpEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n", boundary)
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n\r\n"
		message += textBody + "\r\n"
	}
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n\r\n"
		message += htmlBody + "\r\n"
	}
	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func renderContent(notification *EmailNotification) (htmlBody, textBody string) {
	data := notification.TemplateData

	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		htmlBody = fmt.Sprintf(`
			<h2>✅ Booking Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your booking <strong>%v</strong> for <strong>%v → %v</strong> on %v is confirmed.</p>
			<p>Seats: %v</p>
			<p>Total: ₹%v</p>
			<p>Safe travels,<br>Busly Team</p>`,
			notification.RecipientName,
			data["booking_ref"], data["source"], data["destination"],
			data["journey_date"], data["seats"], data["total_amount"],
		)
		textBody = fmt.Sprintf(
			"Hi %s,\n\nYour booking %v for %v -> %v on %v is confirmed.\nSeats: %v\nTotal: Rs %v\n\nSafe travels,\nBusly Team",
			notification.RecipientName,
			data["booking_ref"], data["source"], data["destination"],
			data["journey_date"], data["seats"], data["total_amount"],
		)

	case NotificationTypeBookingCancelled:
		htmlBody = fmt.Sprintf(`
			<h2>❌ Booking Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your booking <strong>%v</strong> has been cancelled.</p>
			<p>Refund: ₹%v (%v%%)</p>
			<p>The refund will reach your original payment method within 5-7 business days.</p>
			<p>Busly Team</p>`,
			notification.RecipientName,
			data["booking_ref"], data["refund_amount"], data["refund_percent"],
		)
		textBody = fmt.Sprintf(
			"Hi %s,\n\nYour booking %v has been cancelled.\nRefund: Rs %v (%v%%)\nThe refund will reach your original payment method within 5-7 business days.\n\nBusly Team",
			notification.RecipientName,
			data["booking_ref"], data["refund_amount"], data["refund_percent"],
		)

	default:
		htmlBody = fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from Busly.</p>
			<p>Busly Team</p>`,
			notification.Subject, notification.RecipientName,
		)
		textBody = fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from Busly.\n\nBusly Team",
			notification.RecipientName,
		)
	}

	return htmlBody, textBody
}

// MockEmailService logs instead of sending. Used when email delivery is
// disabled in configuration.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] %s notification to %s (%s)",
		notification.Type, notification.RecipientEmail, notification.RecipientName)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	return nil
}
