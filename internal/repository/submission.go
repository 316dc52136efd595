package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmissionStore is the persistence boundary for the submission log. It is
// injected into the pipeline so the sqlx-backed store and the in-memory store
// are interchangeable without touching call sites.
type SubmissionStore interface {
	Create(sub *model.Submission) error
	ByID(id string) (*model.Submission, error)
	ByPortal(portalID string) ([]*model.Submission, error)
	Size() (int, error)
}

type submissionStore struct {
	db *sqlx.DB
}

func NewSubmissionStore(db *sqlx.DB) *submissionStore {
	return &submissionStore{db: db}
}

func (r *submissionStore) Create(sub *model.Submission) error {
	query := `INSERT INTO submissions (id, portal_id, request_id, item_key, folder_id, folder_path, storage_key, file_name, size_bytes, ocr_status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		sub.ID,
		sub.PortalID,
		sub.RequestID,
		sub.ItemKey,
		sub.FolderID,
		sub.FolderPath,
		sub.StorageKey,
		sub.FileName,
		sub.SizeBytes,
		sub.OCRStatus,
		sub.CreatedAt,
	)

	return err
}

func (r *submissionStore) ByID(id string) (*model.Submission, error) {
	sub := &model.Submission{}
	query := `SELECT * FROM submissions WHERE id = $1`

	err := r.db.Get(sub, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSubmissionNotFound
	}

	return sub, err
}

func (r *submissionStore) ByPortal(portalID string) ([]*model.Submission, error) {
	var subs []*model.Submission
	query := `SELECT * FROM submissions WHERE portal_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&subs, query, portalID)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *submissionStore) Size() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM submissions`)
	return count, err
}
