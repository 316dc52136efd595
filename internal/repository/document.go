package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	ByID(id string) (*model.Document, error)
	ByFolder(folderID string) ([]*model.Document, error)
	TotalSizeByOrganization(organizationID string) (int64, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *documentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	query := `INSERT INTO documents (id, name, folder_id, organization_id, size_bytes, storage_key, storage_bucket, type, uploaded_by_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		doc.ID,
		doc.Name,
		doc.FolderID,
		doc.OrganizationID,
		doc.SizeBytes,
		doc.StorageKey,
		doc.StorageBucket,
		doc.Type,
		doc.UploadedByID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	return err
}

func (r *documentRepository) ByID(id string) (*model.Document, error) {
	doc := &model.Document{}
	query := `SELECT * FROM documents WHERE id = $1`

	err := r.db.Get(doc, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}

	return doc, err
}

// TotalSizeByOrganization returns the bytes the organization's vault
// currently holds. Used for plan quota checks.
func (r *documentRepository) TotalSizeByOrganization(organizationID string) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(size_bytes), 0) FROM documents WHERE organization_id = $1`

	err := r.db.Get(&total, query, organizationID)
	return total, err
}

func (r *documentRepository) ByFolder(folderID string) ([]*model.Document, error) {
	var docs []*model.Document
	query := `SELECT * FROM documents WHERE folder_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&docs, query, folderID)
	if err != nil {
		return nil, err
	}

	return docs, nil
}
