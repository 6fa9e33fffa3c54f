package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"helpdesk/internal/model"
)

// CommentRepository defines comment persistence operations. Comments are
// append-only: there is no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment row only; an attached Author is already
// persisted and is not written again.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
