package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
)

type OrganizationRepository interface {
	ByID(id string) (*model.Organization, error)
}

type organizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) *organizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) ByID(id string) (*model.Organization, error) {
	org := &model.Organization{}
	query := `SELECT * FROM organizations WHERE id = $1`

	err := r.db.Get(org, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrOrganizationNotFound
	}

	return org, err
}
