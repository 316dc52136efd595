package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrRequestNotFound = errors.New("portal request not found")
)

type RequestRepository interface {
	ByID(id string) (*model.PortalRequest, error)
	Create(req *model.PortalRequest) error
	CreateFulfillment(f *model.RequestFulfillment) error
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) *requestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) ByID(id string) (*model.PortalRequest, error) {
	req := &model.PortalRequest{}
	query := `SELECT * FROM portal_requests WHERE id = $1`

	err := r.db.Get(req, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}

	return req, err
}

func (r *requestRepository) Create(req *model.PortalRequest) error {
	query := `INSERT INTO portal_requests (id, portal_id, label, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, req.ID, req.PortalID, req.Label, req.CreatedAt)
	return err
}

func (r *requestRepository) CreateFulfillment(f *model.RequestFulfillment) error {
	query := `INSERT INTO request_fulfillments (id, request_id, document_id, status, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, f.ID, f.RequestID, f.DocumentID, f.Status, f.CreatedAt)
	return err
}
