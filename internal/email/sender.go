package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Sender delivers transactional mail over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(host string, port int, username, password, from string) *Sender {
	dialer := gomail.NewDialer(host, port, username, password)
	return &Sender{
		dialer: dialer,
		from:   from,
	}
}

func (s *Sender) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

// SendPasswordResetEmail mails the single-use reset link to the account
// address. The token inside resetURL is the plaintext secret; it is never
// logged here.
func (s *Sender) SendPasswordResetEmail(to, fullName, resetURL string) error {
	subject := "Password Reset"
	body, err := s.parseTemplate("password_reset_email.html", map[string]string{
		"FullName": fullName,
		"ResetURL": resetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}
	return s.sendEmail(to, subject, body)
}

func (s *Sender) parseTemplate(templateFileName string, data interface{}) (string, error) {
	t, err := template.ParseFS(templatesFS, "templates/"+templateFileName)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateFileName, err)
	}
	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateFileName, err)
	}
	return buf.String(), nil
}
