package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"estatecrm/config"
	"estatecrm/models"
)

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Upcoming meeting</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Upcoming meeting: {{.Title}}</h2>
    <p>Hello {{.AgentName}},</p>
    <p>You have a {{.Type}} meeting with <strong>{{.LeadName}}</strong> on {{.Date}} at {{.Time}} ({{.Duration}} minutes).</p>
    {{if .PropertyAddress}}<p>Location: {{.PropertyAddress}}</p>{{end}}
    <p style="font-size: 12px; color: #7f8c8d;">EstateCRM reminder service</p>
</body>
</html>`))

// Mailer delivers meeting reminder emails over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendMeetingReminder emails the agent about an upcoming meeting. It is a
// no-op when SMTP is not configured so local setups work without a relay.
func (m *Mailer) SendMeetingReminder(agent *models.User, meeting *models.Meeting) error {
	if m.cfg.Host == "" {
		return nil
	}

	data := struct {
		Title           string
		AgentName       string
		Type            string
		LeadName        string
		Date            string
		Time            string
		Duration        int
		PropertyAddress string
	}{
		Title:     meeting.Title,
		AgentName: agent.Name,
		Type:      meeting.Type,
		LeadName:  meeting.LeadName,
		Date:      meeting.Date,
		Time:      meeting.Time,
		Duration:  meeting.Duration,
	}
	if meeting.PropertyAddress != nil {
		data.PropertyAddress = *meeting.PropertyAddress
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering reminder template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", agent.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Reminder: %s at %s", meeting.Title, meeting.Time))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
