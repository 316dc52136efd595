package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrPortalNotFound = errors.New("portal not found")
)

type PortalRepository interface {
	ByID(id string) (*model.Portal, error)
	Create(portal *model.Portal) error
}

type portalRepository struct {
	db *sqlx.DB
}

func NewPortalRepository(db *sqlx.DB) *portalRepository {
	return &portalRepository{db: db}
}

func (r *portalRepository) ByID(id string) (*model.Portal, error) {
	portal := &model.Portal{}
	query := `SELECT * FROM portals WHERE id = $1`

	err := r.db.Get(portal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPortalNotFound
	}

	return portal, err
}

func (r *portalRepository) Create(portal *model.Portal) error {
	query := `INSERT INTO portals (id, name, organization_id, created_by_id, client_name, client_email, access_code_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		portal.ID,
		portal.Name,
		portal.OrganizationID,
		portal.CreatedByID,
		portal.ClientName,
		portal.ClientEmail,
		portal.AccessCodeHash,
		portal.CreatedAt,
		portal.UpdatedAt,
	)

	return err
}
