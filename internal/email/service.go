package emailService

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"os"
	"sync"
)

const (
	subjectVerificationCode  = "Confirm your registration"
	templateVerificationCode = "verification_code.html"
	subjectPasswordReset     = "Reset your password"
	templatePasswordReset    = "password_reset.html"
)

//go:embed templates/*.html
var templateFS embed.FS

type EmailData interface {
	TemplateFileName() string
	Subject() string
}

type EmailSender interface {
	QueueEmail(to string, data EmailData)
}

type VerificationCodeData struct {
	UserName string
	Code     string
}

func (d VerificationCodeData) TemplateFileName() string {
	return templateVerificationCode
}

func (d VerificationCodeData) Subject() string {
	return subjectVerificationCode
}

type PasswordResetData struct {
	UserName string
	Code     string
}

func (d PasswordResetData) TemplateFileName() string {
	return templatePasswordReset
}

func (d PasswordResetData) Subject() string {
	return subjectPasswordReset
}

// EmailService delivers templated mail through a buffered queue and a single
// worker goroutine. When SMTP credentials are missing from the environment the
// service stays enabled but only logs what it would have sent, so the API
// remains usable in development.
type EmailService struct {
	from      string
	password  string
	smtpHost  string
	smtpPort  string
	disabled  bool
	templates *template.Template
	taskQueue chan EmailTask
}

type EmailTask struct {
	to           string
	templateFile string
	data         EmailData
	subject      string
}

var (
	instance *EmailService
	once     sync.Once
)

func NewEmailService() *EmailService {
	once.Do(func() {
		templates, err := template.ParseFS(templateFS, "templates/*.html")
		if err != nil {
			slog.Error("Could not parse email templates", "error", err)
		}

		from := os.Getenv("EMAIL_ADDRESS")
		password := os.Getenv("EMAIL_PASSWORD")
		smtpHost := os.Getenv("SMTP_HOST")
		if smtpHost == "" {
			smtpHost = "smtp.gmail.com"
		}
		smtpPort := os.Getenv("SMTP_PORT")
		if smtpPort == "" {
			smtpPort = "587"
		}

		disabled := from == "" || password == ""
		if disabled {
			slog.Warn("EMAIL_ADDRESS or EMAIL_PASSWORD not set, outgoing mail will only be logged")
		}

		instance = &EmailService{
			from:      from,
			password:  password,
			smtpHost:  smtpHost,
			smtpPort:  smtpPort,
			disabled:  disabled,
			templates: templates,
			taskQueue: make(chan EmailTask, 100),
		}

		go instance.worker()
	})
	return instance
}

func (s *EmailService) worker() {
	for task := range s.taskQueue {
		if err := s.sendTemplatedEmail(task.to, task.templateFile, task.data, task.subject); err != nil {
			slog.Error("Error sending email", "to", task.to, "error", err)
		}
	}
}

func (s *EmailService) QueueEmail(to string, data EmailData) {
	s.taskQueue <- EmailTask{to, data.TemplateFileName(), data, data.Subject()}
}

func (s *EmailService) sendTemplatedEmail(to, templateFileName string, data EmailData, subject string) error {
	if s.templates == nil {
		return fmt.Errorf("email templates are not loaded")
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateFileName, data); err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	if s.disabled {
		slog.Info("Email delivery disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		body.String())

	auth := smtp.PlainAuth("", s.from, s.password, s.smtpHost)
	if err := smtp.SendMail(s.smtpHost+":"+s.smtpPort, auth, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
