package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendInvitationEmail(toEmail, tempPassword, role string) error
	SendPasswordResetEmail(toEmail, token string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string // Base URL used in email links
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendInvitationEmail mails temporary credentials to an invited faculty member.
func (s *EmailServiceImpl) SendInvitationEmail(toEmail, tempPassword, role string) error {
	// Without SMTP credentials, log the credentials instead of sending (development)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("role", role).
			Msg("SMTP credentials not configured - invitation email not sent, temporary password logged for testing")
		return nil
	}

	roleLabel := role
	if role == "SUPER_ADMIN" {
		roleLabel = "Head of Department"
	}

	subject := "Welcome to Departmental Portal - Your Account Details"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">You've Been Invited!</h2>
				<p>You have been invited to join the Departmental Portal as <strong>%s</strong>.</p>
				<p>Sign in with the credentials below and change your password immediately:</p>
				<p>Email: <strong>%s</strong><br>Temporary password: <strong>%s</strong></p>
				<p><a href="%s">Open the portal</a></p>
				<p>Best regards,<br>The Departmental Portal Team</p>
			</div>
		</body>
		</html>
	`, roleLabel, toEmail, tempPassword, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail mails a reset link carrying the reset token.
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, token string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Msg("SMTP credentials not configured - password reset email not sent. Use the token above for testing.")
		return nil
	}

	subject := "Reset Your Password - Departmental Portal"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset</h2>
				<p>We received a request to reset your password. Click the button below to choose a new one:</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>
				<p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>
				<p>Best regards,<br>The Departmental Portal Team</p>
			</div>
		</body>
		</html>
	`, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email over SMTP with STARTTLS
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: s.config.Host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize message body: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return client.Quit()
}
