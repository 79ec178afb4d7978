package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendInvitation(to, projectName, inviterName, link string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendInvitation(to, projectName, inviterName, link string) error {
	m := invitationMessage(s.from, to, projectName, inviterName, link)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

func invitationMessage(from, to, projectName, inviterName, link string) *gomail.Message {
	if inviterName == "" {
		inviterName = "A teammate"
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("You're invited to %s on Doabli", projectName))

	body := fmt.Sprintf(`
		<h2>%s invited you to <b>%s</b></h2>
		<p>Join the project to see its board, pages and tasks.</p>
		<p><a href="%s">Open Doabli</a></p>
		<p>If you were not expecting this invitation you can ignore this email.</p>
	`, html.EscapeString(inviterName), html.EscapeString(projectName), html.EscapeString(link))

	m.SetBody("text/html", body)
	return m
}
