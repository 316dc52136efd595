package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
)

type FolderService struct {
	folderRepo repository.FolderRepository
}

func NewFolderService(folderRepo repository.FolderRepository) *FolderService {
	return &FolderService{folderRepo: folderRepo}
}

// Resolve walks the path segments left to right, finding or lazily creating
// each folder under the previous one, and returns the deepest folder's ID.
// Empty segments resolve to nil. Any failure is logged and resolves to nil:
// callers must store the file with no folder association, not fail the
// upload.
//
// There is no guard across the find-or-create step: two concurrent
// resolutions of the same new path can race and create duplicate sibling
// folders with the same name.
func (s *FolderService) Resolve(organizationID string, segments []string) *string {
	if len(segments) == 0 {
		return nil
	}

	var parentID *string

	for _, name := range segments {
		existing, err := s.folderRepo.ByNameAndParent(organizationID, name, parentID)

		var currentID string
		switch {
		case err == nil:
			currentID = existing.ID

		case errors.Is(err, repository.ErrFolderNotFound):
			now := time.Now()
			folder := &model.Folder{
				ID:             uuid.New().String(),
				Name:           name,
				OrganizationID: organizationID,
				ParentID:       parentID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			err = s.folderRepo.Create(folder)
			if err != nil {
				slog.Error("failed to create folder", "name", name, "organization_id", organizationID, "error", err)
				return nil
			}

			currentID = folder.ID
			slog.Debug("created folder", "name", name, "id", currentID)

		default:
			slog.Error("failed to look up folder", "name", name, "organization_id", organizationID, "error", err)
			return nil
		}

		id := currentID
		parentID = &id
	}

	return parentID
}
