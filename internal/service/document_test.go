package service

import (
	"errors"
	"testing"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType("report.pdf"))
	assert.Equal(t, "image/jpeg", DetectMimeType("photo.JPG"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", DetectMimeType("contract.docx"))
	assert.Equal(t, "text/csv", DetectMimeType("export.csv"))
	assert.Equal(t, "application/octet-stream", DetectMimeType("firmware.bin"))
	assert.Equal(t, "application/octet-stream", DetectMimeType("noextension"))
}

func TestClassifyMimeType(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"report.pdf", model.DocumentTypePDF},
		{"photo.JPG", model.DocumentTypeImage},
		{"scan.webp", model.DocumentTypeImage},
		{"contract.docx", model.DocumentTypeWord},
		{"letter.doc", model.DocumentTypeWord},
		{"budget.xlsx", model.DocumentTypeExcel},
		{"ledger.xls", model.DocumentTypeExcel},
		{"archive.zip", model.DocumentTypeOther},
		{"notes.txt", model.DocumentTypeOther},
		{"firmware.bin", model.DocumentTypeOther},
	}

	for _, tt := range tests {
		got := ClassifyMimeType(DetectMimeType(tt.fileName))
		assert.Equal(t, tt.want, got, "file %s", tt.fileName)
	}
}

func TestRegisterCreatesRecord(t *testing.T) {
	repo := &fakeDocRepo{}
	svc := NewDocumentService(repo)

	id := svc.Register("report.pdf", 2048, nil, "org-1", "uploads/2026/report.pdf", "securevault-documents", "user-1")
	require.NotNil(t, id)

	require.Len(t, repo.docs, 1)
	doc := repo.docs[0]
	assert.Equal(t, *id, doc.ID)
	assert.Equal(t, "report.pdf", doc.Name)
	assert.Equal(t, model.DocumentTypePDF, doc.Type)
	assert.Equal(t, int64(2048), doc.SizeBytes)
	assert.Equal(t, "uploads/2026/report.pdf", doc.StorageKey)
	assert.Equal(t, "user-1", doc.UploadedByID)
}

func TestRegisterReturnsNilOnFailure(t *testing.T) {
	repo := &fakeDocRepo{failErr: errors.New("db down")}
	svc := NewDocumentService(repo)

	id := svc.Register("report.pdf", 2048, nil, "org-1", "key", "bucket", "user-1")
	assert.Nil(t, id)
	assert.Empty(t, repo.docs)
}
