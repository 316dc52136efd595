package service

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
)

// mimeByExtension maps file extensions to declared MIME types. Unknown
// extensions fall back to a generic binary type.
var mimeByExtension = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"zip":  "application/zip",
	"txt":  "text/plain",
	"csv":  "text/csv",
}

// DetectMimeType derives a MIME type from the file name's extension,
// case-insensitively.
func DetectMimeType(fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	mime, ok := mimeByExtension[ext]
	if !ok {
		return "application/octet-stream"
	}
	return mime
}

// classificationRules is an ordered table of (predicate, result) pairs.
// Evaluated in sequence; first match wins. The spreadsheet rule runs before
// the word rule because the xlsx MIME type contains "document"
// (vnd.openxmlformats-officedocument.spreadsheetml.sheet).
var classificationRules = []struct {
	matches func(mime string) bool
	result  string
}{
	{func(m string) bool { return strings.Contains(m, "pdf") }, model.DocumentTypePDF},
	{func(m string) bool { return strings.HasPrefix(m, "image/") }, model.DocumentTypeImage},
	{func(m string) bool { return strings.Contains(m, "excel") || strings.Contains(m, "spreadsheet") }, model.DocumentTypeExcel},
	{func(m string) bool { return strings.Contains(m, "word") || strings.Contains(m, "document") }, model.DocumentTypeWord},
}

// ClassifyMimeType maps a MIME type to the coarse document type enum.
func ClassifyMimeType(mime string) string {
	for _, rule := range classificationRules {
		if rule.matches(mime) {
			return rule.result
		}
	}
	return model.DocumentTypeOther
}

type DocumentService struct {
	docRepo repository.DocumentRepository
}

func NewDocumentService(docRepo repository.DocumentRepository) *DocumentService {
	return &DocumentService{docRepo: docRepo}
}

// Register creates the document record for an uploaded file and returns its
// ID. Persistence failures are logged and resolve to nil: a missing document
// record must never block recording that the client uploaded something.
func (s *DocumentService) Register(fileName string, sizeBytes int64, folderID *string, organizationID, storageKey, storageBucket, uploaderID string) *string {
	mime := DetectMimeType(fileName)
	now := time.Now()

	doc := &model.Document{
		ID:             uuid.New().String(),
		Name:           fileName,
		FolderID:       folderID,
		OrganizationID: organizationID,
		SizeBytes:      sizeBytes,
		StorageKey:     storageKey,
		StorageBucket:  storageBucket,
		Type:           ClassifyMimeType(mime),
		UploadedByID:   uploaderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.docRepo.Create(doc)
	if err != nil {
		slog.Error("failed to create document record", "file_name", fileName, "organization_id", organizationID, "error", err)
		return nil
	}

	return &doc.ID
}
