package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Email struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Notifier delivers account mails. Delivery is best-effort everywhere;
// callers log failures and carry on.
type Notifier interface {
	NotifyWelcome(email, name, tempPassword string) error
	NotifyPasswordReset(email, tempPassword string) error
}

type Mailgun struct {
	domain  string
	apiKey  string
	apiBase string
	from    string
}

func NewMailer(domain, apiKey, apiBase, from string) *Mailgun {
	return &Mailgun{
		domain:  domain,
		apiKey:  apiKey,
		apiBase: apiBase,
		from:    from,
	}
}

func (m *Mailgun) SendMail(e *Email) error {
	mg := mailgun.NewMailgun(m.domain, m.apiKey)
	mg.SetAPIBase(m.apiBase)

	message := mailgun.NewMessage(e.From, e.Subject, "", e.To...)
	message.SetHTML(e.Body)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, _, err := mg.Send(ctx, message)
	if err != nil {
		return err
	}

	return nil
}

func (m *Mailgun) NotifyWelcome(email, name, tempPassword string) error {
	body := fmt.Sprintf(`<html>
	<body>
		<h2>Welcome to the Employee Directory!</h2>
		<p>Dear %s,</p>
		<p>Your account has been created. Sign in with the temporary password below and change it right away:</p>
		<p><strong>%s</strong></p>
		<p>Best regards,<br>Employee Directory Team</p>
	</body>
</html>`, name, tempPassword)

	return m.SendMail(&Email{
		Subject: "Welcome to the Employee Directory",
		Body:    body,
		From:    m.from,
		To:      []string{email},
	})
}

func (m *Mailgun) NotifyPasswordReset(email, tempPassword string) error {
	body := fmt.Sprintf(`<html>
	<body>
		<h2>Password Reset</h2>
		<p>A temporary password has been issued for your account:</p>
		<p><strong>%s</strong></p>
		<p>Sign in with it and set a new password. If you did not request this, contact your administrator.</p>
		<p>Best regards,<br>Employee Directory Team</p>
	</body>
</html>`, tempPassword)

	return m.SendMail(&Email{
		Subject: "Employee Directory - Password Reset",
		Body:    body,
		From:    m.from,
		To:      []string{email},
	})
}
