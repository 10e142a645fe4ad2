package mailer

import (
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingMailer() (*SMTPMailer, *[]capturedMail) {
	var sent []capturedMail
	m := NewSMTPMailer("smtp.gmail.com", 587, "user", "pass", "noreply@example.com", "Auto Concierge")
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m, &sent
}

func TestSMTPMailer_WelcomeEmail(t *testing.T) {
	m, sent := newCapturingMailer()

	require.NoError(t, m.SendWelcomeEmail("dealer@example.com", "DEALER-0001", "abc12345"))
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	require.Equal(t, "smtp.gmail.com:587", mail.addr)
	require.Equal(t, []string{"dealer@example.com"}, mail.to)
	require.Contains(t, mail.msg, "Subject: Welcome to Auto Concierge")
	require.Contains(t, mail.msg, "DEALER-0001")
	require.Contains(t, mail.msg, "abc12345")
	require.Contains(t, mail.msg, "Content-Type: text/html")
}

func TestSMTPMailer_ResetEmailCarriesLink(t *testing.T) {
	m, sent := newCapturingMailer()

	link := "https://app.example.com/reset?token=deadbeef"
	require.NoError(t, m.SendPasscodeResetEmail("dealer@example.com", "DEALER-0001", link))
	require.Len(t, *sent, 1)
	require.Contains(t, (*sent)[0].msg, link)
}

func TestSMTPMailer_SuspensionAndPaymentFailed(t *testing.T) {
	m, sent := newCapturingMailer()

	require.NoError(t, m.SendSuspensionEmail("dealer@example.com", "DEALER-0001"))
	require.NoError(t, m.SendPaymentFailedEmail("dealer@example.com", "DEALER-0001"))
	require.NoError(t, m.SendStaleRequestAlert("dealer@example.com", "DEALER-0001", 3))
	require.Len(t, *sent, 3)

	require.Contains(t, (*sent)[0].msg, "paused")
	require.Contains(t, (*sent)[1].msg, "Payment failed")
	require.True(t, strings.Contains((*sent)[2].msg, "3 viewing requests waiting"))
}
