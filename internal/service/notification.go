package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
)

// maxAdminRecipients caps how many organization admins are notified per
// upload, in addition to the portal creator.
const maxAdminRecipients = 5

// FormatFileSize renders a byte count for humans using 1024-based units.
func FormatFileSize(b int64) string {
	if b <= 0 {
		return "0 B"
	}
	if b < 1024 {
		return fmt.Sprintf("%d B", b)
	}

	units := []string{"KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := ""
	for _, u := range units {
		size /= 1024
		unit = u
		if size < 1024 {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}

type NotificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	orgRepo   repository.OrganizationRepository
	emailer   UploadEmailer
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	emailer UploadEmailer,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		emailer:   emailer,
	}
}

// NotifyUpload fans an upload event out to the portal creator and up to
// maxAdminRecipients organization admins. Each recipient gets an in-app
// notification and an email, delivered in parallel. A failure for one
// recipient is logged and never affects the others; callers treat the whole
// fan-out as best effort.
func (s *NotificationService) NotifyUpload(portal *model.Portal, fileName string, sizeBytes int64, folderPath []string) {
	recipients := s.recipients(portal)
	if len(recipients) == 0 {
		slog.Warn("no notification recipients resolved", "portal_id", portal.ID)
		return
	}

	clientName := "A client"
	if portal.ClientName != nil && *portal.ClientName != "" {
		clientName = *portal.ClientName
	}

	folderDisplay := "General"
	if len(folderPath) > 0 {
		folderDisplay = strings.Join(folderPath, " / ")
	}

	orgName := "Your Business"
	if portal.OrganizationID != nil {
		org, err := s.orgRepo.ByID(*portal.OrganizationID)
		if err != nil {
			slog.Error("failed to load organization", "organization_id", *portal.OrganizationID, "error", err)
		} else if org.Name != "" {
			orgName = org.Name
		}
	}

	sizeDisplay := FormatFileSize(sizeBytes)
	message := fmt.Sprintf("%s uploaded %q (%s) to %s", clientName, fileName, sizeDisplay, folderDisplay)

	// The bell insert and the email are independent legs: each recipient gets
	// both attempted even when the other leg fails.
	var wg sync.WaitGroup
	for _, user := range recipients {
		wg.Add(2)

		go func(user *model.User) {
			defer wg.Done()

			n := &model.Notification{
				ID:        uuid.New().String(),
				UserID:    user.ID,
				Type:      model.NotificationTypeClientUpload,
				Title:     "New document uploaded",
				Message:   message,
				CreatedAt: time.Now(),
			}
			err := s.notifRepo.Create(n)
			if err != nil {
				slog.Error("failed to create notification", "user_id", user.ID, "portal_id", portal.ID, "error", err)
			}
		}(user)

		go func(user *model.User) {
			defer wg.Done()

			err := s.emailer.SendUploadNotification(user.Email, UploadNotificationParams{
				RecipientName:    user.DisplayName(),
				ClientName:       clientName,
				FileName:         fileName,
				SizeDisplay:      sizeDisplay,
				FolderDisplay:    folderDisplay,
				PortalName:       portal.Name,
				OrganizationName: orgName,
			})
			if err != nil {
				slog.Error("failed to send upload notification email", "to", user.Email, "portal_id", portal.ID, "error", err)
			}
		}(user)
	}
	wg.Wait()
}

// recipients resolves the portal creator plus organization admins, excluding
// the creator from the admin list so nobody is notified twice.
func (s *NotificationService) recipients(portal *model.Portal) []*model.User {
	var recipients []*model.User

	creator, err := s.userRepo.ByID(portal.CreatedByID)
	if err != nil {
		slog.Error("failed to load portal creator", "portal_id", portal.ID, "user_id", portal.CreatedByID, "error", err)
	} else {
		recipients = append(recipients, creator)
	}

	if portal.OrganizationID != nil {
		admins, err := s.userRepo.OrgAdmins(*portal.OrganizationID, portal.CreatedByID, maxAdminRecipients)
		if err != nil {
			slog.Error("failed to load organization admins", "organization_id", *portal.OrganizationID, "error", err)
		} else {
			recipients = append(recipients, admins...)
		}
	}

	return recipients
}

// SendClientConfirmation emails the uploading client a receipt. Portals with
// no client email on file skip this silently.
func (s *NotificationService) SendClientConfirmation(portal *model.Portal, fileName string) {
	if portal.ClientEmail == nil || *portal.ClientEmail == "" {
		slog.Debug("no client email on portal, skipping confirmation", "portal_id", portal.ID)
		return
	}

	clientName := "there"
	if portal.ClientName != nil && *portal.ClientName != "" {
		clientName = *portal.ClientName
	}

	err := s.emailer.SendUploadConfirmation(*portal.ClientEmail, UploadConfirmationParams{
		ClientName: clientName,
		FileName:   fileName,
		PortalName: portal.Name,
	})
	if err != nil {
		slog.Error("failed to send upload confirmation email", "to", *portal.ClientEmail, "portal_id", portal.ID, "error", err)
	}
}
