package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	ByID(id string) (*model.User, error)
	// OrgAdmins returns organization members with an owner or admin role,
	// excluding the given user, capped at limit.
	OrgAdmins(organizationID, excludeUserID string, limit int) ([]*model.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) OrgAdmins(organizationID, excludeUserID string, limit int) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT u.id, u.email, u.name, u.created_at, u.updated_at
	          FROM users u
	          INNER JOIN organization_members om ON u.id = om.user_id
	          WHERE om.organization_id = $1 AND om.role IN ('owner', 'admin')
	          AND u.id != $2
	          LIMIT $3`

	err := r.db.Select(&users, query, organizationID, excludeUserID, limit)
	if err != nil {
		return nil, err
	}

	return users, nil
}
