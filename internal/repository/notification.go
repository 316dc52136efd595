package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/model"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	ByUser(userID string) ([]*model.Notification, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, type, title, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.CreatedAt,
	)

	return err
}

func (r *notificationRepository) ByUser(userID string) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&notifications, query, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}
