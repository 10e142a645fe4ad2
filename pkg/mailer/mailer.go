package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email to dealers. Sends are fire-and-forget
// from the caller's point of view: errors are logged, never surfaced.
type Mailer interface {
	SendWelcomeEmail(to, dealerID, passcode string) error
	SendPasscodeResetEmail(to, dealerID, resetLink string) error
	SendSuspensionEmail(to, dealerID string) error
	SendPaymentFailedEmail(to, dealerID string) error
	SendStaleRequestAlert(to, dealerID string, pendingCount int) error
}

// SMTPMailer sends email over SMTP (Gmail-style submission on port 587)
type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
	appName   string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(host string, port int, username, password, fromEmail, fromName string) *SMTPMailer {
	return &SMTPMailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
		appName:   "Auto Concierge",
		send:      smtp.SendMail,
	}
}

// SendWelcomeEmail sends the signup email with the dealer's one-time passcode
func (m *SMTPMailer) SendWelcomeEmail(to, dealerID, passcode string) error {
	subject := fmt.Sprintf("Welcome to %s", m.appName)
	body := m.wrap(fmt.Sprintf(`
		<h2>Your storefront is ready</h2>
		<p>Your dealer ID is <strong>%s</strong>.</p>
		<p>Sign in with this one-time passcode and change it right away:</p>
		<div class="code">%s</div>
		<p>If you did not sign up, ignore this email.</p>`, dealerID, passcode))
	return m.sendHTML(to, subject, body)
}

// SendPasscodeResetEmail sends a single-use reset link valid for one hour
func (m *SMTPMailer) SendPasscodeResetEmail(to, dealerID, resetLink string) error {
	subject := "Reset your passcode"
	body := m.wrap(fmt.Sprintf(`
		<h2>Passcode reset requested</h2>
		<p>A passcode reset was requested for dealer <strong>%s</strong>.</p>
		<p><a class="button" href="%s">Reset passcode</a></p>
		<p>The link expires in 1 hour and can be used once.</p>
		<p>If you did not request this, ignore this email.</p>`, dealerID, resetLink))
	return m.sendHTML(to, subject, body)
}

// SendSuspensionEmail notifies a dealer their storefront was paused
func (m *SMTPMailer) SendSuspensionEmail(to, dealerID string) error {
	subject := "Your storefront has been paused"
	body := m.wrap(fmt.Sprintf(`
		<h2>Storefront paused</h2>
		<p>The subscription for dealer <strong>%s</strong> is no longer active,
		so the public storefront has been paused.</p>
		<p>Update your billing details to reactivate it.</p>`, dealerID))
	return m.sendHTML(to, subject, body)
}

// SendPaymentFailedEmail notifies a dealer a subscription payment failed
func (m *SMTPMailer) SendPaymentFailedEmail(to, dealerID string) error {
	subject := "Payment failed"
	body := m.wrap(fmt.Sprintf(`
		<h2>We could not charge your card</h2>
		<p>A subscription payment for dealer <strong>%s</strong> failed.
		Your storefront stays active while the charge is retried.</p>
		<p>Please check your payment method.</p>`, dealerID))
	return m.sendHTML(to, subject, body)
}

// SendStaleRequestAlert reminds a dealer about uncontacted viewing requests
func (m *SMTPMailer) SendStaleRequestAlert(to, dealerID string, pendingCount int) error {
	subject := fmt.Sprintf("%d viewing requests waiting", pendingCount)
	body := m.wrap(fmt.Sprintf(`
		<h2>Buyers are waiting to hear from you</h2>
		<p>Dealer <strong>%s</strong> has <strong>%d</strong> new viewing
		requests that have not been contacted yet.</p>
		<p>Log in to your dashboard to follow up.</p>`, dealerID, pendingCount))
	return m.sendHTML(to, subject, body)
}

func (m *SMTPMailer) sendHTML(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return m.send(addr, auth, m.fromEmail, []string{to}, []byte(msg.String()))
}

func (m *SMTPMailer) wrap(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.code { font-size: 28px; font-weight: bold; letter-spacing: 6px; text-align: center; padding: 16px; background: #f4f4f5; border-radius: 8px; margin: 16px 0; }
		.button { display: inline-block; padding: 12px 28px; background: #111827; color: white; text-decoration: none; border-radius: 6px; margin: 16px 0; }
		.footer { margin-top: 24px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		%s
		<div class="footer">%s</div>
	</div>
</body>
</html>`, content, m.appName)
}
