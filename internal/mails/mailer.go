package mails

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

const (
	WelcomeTemplate          = "welcome.tmpl"
	WatchPartyInviteTemplate = "watch_party_invite.tmpl"
)

//go:embed "templates"
var templateFS embed.FS

// Sender delivers a templated mail to one recipient.
type Sender interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type Mailer struct {
	Dialer       *mail.Dialer
	Sender       string
	RetriesCount int
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	if retriesCount < 1 {
		retriesCount = 1
	}
	return &Mailer{
		Dialer:       dialer,
		Sender:       sender,
		RetriesCount: retriesCount,
	}
}

func parseEmailTmpl(tmplName string, tmplData any) (map[string]string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, err
	}
	tmplPartials := map[string]string{
		"subject":   "",
		"plainBody": "",
		"htmlBody":  "",
	}
	for key := range tmplPartials {
		buff := new(bytes.Buffer)
		if err = tmpl.ExecuteTemplate(buff, key, tmplData); err != nil {
			return nil, err
		}
		tmplPartials[key] = buff.String()
	}
	return tmplPartials, nil
}

func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", tmplPartials["subject"])
	msg.SetBody("text/plain", tmplPartials["plainBody"])
	msg.AddAlternative("text/html", tmplPartials["htmlBody"])
	for i := 0; i < m.RetriesCount; i++ {
		err = m.Dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}

// Nop renders the template and drops the mail. Used while SMTP is disabled.
type Nop struct{}

func (Nop) Send(recipient string, tmplName string, tmplData any) error {
	_, err := parseEmailTmpl(tmplName, tmplData)
	return err
}
