package service

import (
	"errors"
	"log/slog"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
)

// Error message is returned verbatim to the portal client.
var ErrStorageQuotaExceeded = errors.New("Storage limit reached")

// QuotaService enforces the vault storage quota of the organization owner's
// plan before an upload is admitted.
type QuotaService struct {
	subRepo repository.SubscriptionRepository
	docRepo repository.DocumentRepository
}

func NewQuotaService(subRepo repository.SubscriptionRepository, docRepo repository.DocumentRepository) *QuotaService {
	return &QuotaService{
		subRepo: subRepo,
		docRepo: docRepo,
	}
}

// CheckUpload returns ErrStorageQuotaExceeded when adding sizeBytes to the
// organization's vault would exceed the owner's plan limit. A failure to read
// the current usage is logged and admits the upload: quota enforcement must
// never take the intake pipeline down with it.
func (s *QuotaService) CheckUpload(organizationID, ownerID string, sizeBytes int64) error {
	limit := s.storageLimit(ownerID)
	if limit < 0 {
		return nil
	}

	used, err := s.docRepo.TotalSizeByOrganization(organizationID)
	if err != nil {
		slog.Error("failed to read vault usage, admitting upload", "organization_id", organizationID, "error", err)
		return nil
	}

	if used+sizeBytes > limit {
		slog.Warn("upload rejected, storage quota exceeded",
			"organization_id", organizationID, "used_bytes", used, "upload_bytes", sizeBytes, "limit_bytes", limit)
		return ErrStorageQuotaExceeded
	}

	return nil
}

// storageLimit resolves the owner's plan quota. Owners without a subscription
// record get the free tier limit.
func (s *QuotaService) storageLimit(ownerID string) int64 {
	sub, err := s.subRepo.ByUserID(ownerID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return model.FreeTierStorageBytes
	}
	if err != nil {
		slog.Error("failed to load subscription, using free tier quota", "user_id", ownerID, "error", err)
		return model.FreeTierStorageBytes
	}

	return sub.StorageLimitBytes()
}
