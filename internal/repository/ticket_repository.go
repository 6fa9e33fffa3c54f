package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"helpdesk/internal/model"
)

// TicketFilter narrows a ticket listing. The visibility fields are mutually
// exclusive: CreatedByID scopes to a client's own tickets, AssignedToOrFree
// to a support user's queue plus the unassigned pool.
type TicketFilter struct {
	CreatedByID      *uuid.UUID
	AssignedToOrFree *uuid.UUID
	Status           *model.TicketStatus
	Priority         *model.TicketPriority
	CategoryID       *uint
	DepartmentID     *uint
	Search           string
	Limit            int
	Offset           int
}

// TicketRepository defines ticket persistence operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	Update(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]model.Ticket, int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

// Update persists the ticket row itself; preloaded associations are left
// untouched.
func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ticket).Error
}

// Delete removes the ticket; its comments and any notifications linking to it
// are covered by the FK cascade.
func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ticket{}, "id = ?", id).Error
}

// FindByID loads the ticket with its user and catalog references, without
// comments.
func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Category").
		Preload("Department").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindDetail is FindByID plus the nested comment list, newest first.
func (r *ticketRepository) FindDetail(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Category").
		Preload("Department").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]model.Ticket, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ticket{})

	if filter.CreatedByID != nil {
		q = q.Where("created_by_id = ?", *filter.CreatedByID)
	}
	if filter.AssignedToOrFree != nil {
		q = q.Where("assigned_to_id = ? OR assigned_to_id IS NULL", *filter.AssignedToOrFree)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var tickets []model.Ticket
	err := q.
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Category").
		Preload("Department").
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
