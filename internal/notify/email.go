package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Email struct {
	cfg  EmailConfig
	send sendFunc
}

func NewEmail(cfg EmailConfig) *Email {
	return &Email{cfg: cfg, send: smtp.SendMail}
}

var completionBody = template.Must(template.New("completion").Parse(`<h2>Your laundry service is complete!</h2>
<p>Details of completed request:</p>
<ul>
  <li>Request ID: {{.ID}}</li>
  <li>Items: {{.Items}} pieces</li>
  <li>Completed at: {{.CompletedAt}}</li>
</ul>
<p>Thank you for using our services!</p>
`))

func (e *Email) NotifyCompletion(_ context.Context, req *models.LaundryRequest) error {
	if e.cfg.User == "" || e.cfg.Password == "" {
		return errors.New("email credentials not configured")
	}
	if req.Email == "" {
		return errors.New("laundry request has no email on record")
	}

	completed := time.Now()
	if req.CompletedAt != nil {
		completed = *req.CompletedAt
	}

	var body bytes.Buffer
	if err := completionBody.Execute(&body, map[string]any{
		"ID":          req.ID,
		"Items":       len(req.Items),
		"CompletedAt": completed.Format(time.RFC1123),
	}); err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: Uni-Ease Service <%s>\r\n", e.cfg.User)
	fmt.Fprintf(&msg, "To: %s\r\n", req.Email)
	fmt.Fprintf(&msg, "Subject: Laundry Request #%s Completed\r\n", req.ID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)
	if err := e.send(e.cfg.Host+":"+e.cfg.Port, auth, e.cfg.User, []string{req.Email}, msg.Bytes()); err != nil {
		return fmt.Errorf("email: %w", err)
	}

	logrus.WithField("request_id", req.ID).Info("completion email sent")
	return nil
}
