package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// UploadEmailer sends the two emails the submission pipeline produces. The
// notification fan-out depends on this interface rather than the resend
// client directly.
type UploadEmailer interface {
	SendUploadNotification(to string, p UploadNotificationParams) error
	SendUploadConfirmation(to string, p UploadConfirmationParams) error
}

type UploadNotificationParams struct {
	RecipientName    string
	ClientName       string
	FileName         string
	SizeDisplay      string
	FolderDisplay    string
	PortalName       string
	OrganizationName string
}

type UploadConfirmationParams struct {
	ClientName string
	FileName   string
	PortalName string
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendUploadNotification(to string, p UploadNotificationParams) error {
	documentsURL := fmt.Sprintf("%s/app/documents", s.appURL)
	subject, body := uploadNotificationTemplate(p, documentsURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "upload_notification", "to", to, "subject", subject, "file", p.FileName)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "upload_notification", "to", to)
	}
	return err
}

func (s *EmailService) SendUploadConfirmation(to string, p UploadConfirmationParams) error {
	subject, body := uploadConfirmationTemplate(p, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "upload_confirmation", "to", to, "subject", subject, "file", p.FileName)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "upload_confirmation", "to", to)
	}
	return err
}
