package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
)

type FolderRepository interface {
	Create(folder *model.Folder) error
	ByID(id string) (*model.Folder, error)
	ByNameAndParent(organizationID, name string, parentID *string) (*model.Folder, error)
}

type folderRepository struct {
	db *sqlx.DB
}

func NewFolderRepository(db *sqlx.DB) *folderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *model.Folder) error {
	query := `INSERT INTO folders (id, name, organization_id, parent_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		folder.ID,
		folder.Name,
		folder.OrganizationID,
		folder.ParentID,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	return err
}

func (r *folderRepository) ByID(id string) (*model.Folder, error) {
	folder := &model.Folder{}
	query := `SELECT * FROM folders WHERE id = $1`

	err := r.db.Get(folder, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFolderNotFound
	}

	return folder, err
}

func (r *folderRepository) ByNameAndParent(organizationID, name string, parentID *string) (*model.Folder, error) {
	folder := &model.Folder{}

	var err error
	if parentID == nil {
		query := `SELECT * FROM folders WHERE organization_id = $1 AND name = $2 AND parent_id IS NULL`
		err = r.db.Get(folder, query, organizationID, name)
	} else {
		query := `SELECT * FROM folders WHERE organization_id = $1 AND name = $2 AND parent_id = $3`
		err = r.db.Get(folder, query, organizationID, name, *parentID)
	}

	if err == sql.ErrNoRows {
		return nil, ErrFolderNotFound
	}

	return folder, err
}
