package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/permission"
	"helpdesk/internal/repository"
)

// CreateTicketInput carries a new ticket. Whatever status the caller sends is
// ignored: a fresh ticket is always open.
type CreateTicketInput struct {
	Title        string
	Description  string
	Priority     model.TicketPriority
	CategoryID   *uint
	DepartmentID *uint
	AssignedToID *uuid.UUID
}

// UpdateTicketInput is a partial update; nil fields are untouched.
type UpdateTicketInput struct {
	Title        *string
	Description  *string
	Status       *model.TicketStatus
	Priority     *model.TicketPriority
	CategoryID   *uint
	DepartmentID *uint
}

// touched lists the field names an update would write, for the client-role
// field restriction.
func (in UpdateTicketInput) touched() []string {
	var fields []string
	if in.Title != nil {
		fields = append(fields, "title")
	}
	if in.Description != nil {
		fields = append(fields, "description")
	}
	if in.Status != nil {
		fields = append(fields, "status")
	}
	if in.Priority != nil {
		fields = append(fields, "priority")
	}
	if in.CategoryID != nil {
		fields = append(fields, "category_id")
	}
	if in.DepartmentID != nil {
		fields = append(fields, "department_id")
	}
	return fields
}

// ListTicketsInput carries the optional listing filters.
type ListTicketsInput struct {
	Status       *model.TicketStatus
	Priority     *model.TicketPriority
	CategoryID   *uint
	DepartmentID *uint
	Search       string
	Page         int
	PageSize     int
}

// TicketService handles the ticket lifecycle. Every mutation is gated by the
// permission evaluator and followed, where an event fires, by notification
// fan-out.
type TicketService interface {
	Create(ctx context.Context, actor *model.User, in CreateTicketInput) (*model.Ticket, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, actor *model.User, in ListTicketsInput) ([]model.Ticket, int64, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateTicketInput) (*model.Ticket, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
	Assign(ctx context.Context, actor *model.User, id, assigneeID uuid.UUID) (*model.Ticket, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	deptRepo   repository.DepartmentRepository
	catRepo    repository.CategoryRepository
	notifier   Notifier
}

// NewTicketService creates a new ticket service.
func NewTicketService(
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	catRepo repository.CategoryRepository,
	notifier Notifier,
) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		deptRepo:   deptRepo,
		catRepo:    catRepo,
		notifier:   notifier,
	}
}

// resolveCategory validates a category id, naming the field on failure.
func (s *ticketService) resolveCategory(ctx context.Context, id uint) error {
	if _, err := s.catRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewValidationError("category_id", "category does not exist")
		}
		return fmt.Errorf("resolve category: %w", err)
	}
	return nil
}

// resolveDepartment validates a department id, naming the field on failure.
func (s *ticketService) resolveDepartment(ctx context.Context, id uint) error {
	if _, err := s.deptRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewValidationError("department_id", "department does not exist")
		}
		return fmt.Errorf("resolve department: %w", err)
	}
	return nil
}

// resolveAssignee validates that the id names an existing support user.
func (s *ticketService) resolveAssignee(ctx context.Context, field string, id uuid.UUID) (*model.User, error) {
	assignee, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewValidationError(field, "user does not exist")
		}
		return nil, fmt.Errorf("resolve assignee: %w", err)
	}
	if assignee.Role != model.RoleSupport {
		return nil, apperrors.NewValidationError(field, "only support users can be assigned tickets")
	}
	return assignee, nil
}

// Create opens a new ticket. Status is forced to open; a client-created
// ticket has its assignee cleared even when one was supplied.
func (s *ticketService) Create(ctx context.Context, actor *model.User, in CreateTicketInput) (*model.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("priority", "unknown priority")
	}
	if in.CategoryID != nil {
		if err := s.resolveCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.DepartmentID != nil {
		if err := s.resolveDepartment(ctx, *in.DepartmentID); err != nil {
			return nil, err
		}
	}

	assignedTo := in.AssignedToID
	if actor.Role == model.RoleClient {
		assignedTo = nil
	}
	if assignedTo != nil {
		if _, err := s.resolveAssignee(ctx, "assigned_to_id", *assignedTo); err != nil {
			return nil, err
		}
	}

	ticket := &model.Ticket{
		Title:        in.Title,
		Description:  in.Description,
		Status:       model.StatusOpen,
		Priority:     priority,
		CreatedByID:  actor.ID,
		AssignedToID: assignedTo,
		CategoryID:   in.CategoryID,
		DepartmentID: in.DepartmentID,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	// Reload with relations for the response payload and the fan-out.
	created, err := s.ticketRepo.FindByID(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("reload ticket: %w", err)
	}

	s.notifier.TicketCreated(ctx, created)
	return created, nil
}

// Get returns the ticket detail with nested comments. An authenticated actor
// without view rights gets a forbidden outcome, not a not-found one.
func (s *ticketService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	ticket, err := s.ticketRepo.FindDetail(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("load ticket: %w", err)
	}
	if !permission.CanView(actor, ticket) {
		return nil, apperrors.ErrForbidden
	}
	return ticket, nil
}

// List returns the tickets visible to the actor: all for admins, the
// assigned-or-unassigned pool for support, their own for clients.
func (s *ticketService) List(ctx context.Context, actor *model.User, in ListTicketsInput) ([]model.Ticket, int64, error) {
	if actor == nil {
		return nil, 0, apperrors.ErrUnauthorized
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, 0, apperrors.NewValidationError("status", "unknown status")
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return nil, 0, apperrors.NewValidationError("priority", "unknown priority")
	}

	filter := repository.TicketFilter{
		Status:       in.Status,
		Priority:     in.Priority,
		CategoryID:   in.CategoryID,
		DepartmentID: in.DepartmentID,
		Search:       in.Search,
	}
	switch actor.Role {
	case model.RoleAdmin:
		// unrestricted
	case model.RoleSupport:
		id := actor.ID
		filter.AssignedToOrFree = &id
	default:
		id := actor.ID
		filter.CreatedByID = &id
	}

	pageSize := in.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	return s.ticketRepo.List(ctx, filter)
}

// Update applies a partial update: admins touch anything, support touches
// tickets assigned to them, clients touch only the title and description of
// their own tickets. A status change fires the status-changed event after
// the row is saved; re-saving the same status is event-free.
func (s *ticketService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateTicketInput) (*model.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("load ticket: %w", err)
	}

	if !permission.CanUpdate(actor, ticket, in.touched()) {
		return nil, apperrors.ErrForbidden
	}

	if in.Status != nil && !in.Status.Valid() {
		return nil, apperrors.NewValidationError("status", "unknown status")
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return nil, apperrors.NewValidationError("priority", "unknown priority")
	}
	if in.CategoryID != nil {
		if err := s.resolveCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.DepartmentID != nil {
		if err := s.resolveDepartment(ctx, *in.DepartmentID); err != nil {
			return nil, err
		}
	}

	oldStatus := ticket.Status
	if in.Title != nil {
		ticket.Title = *in.Title
	}
	if in.Description != nil {
		ticket.Description = *in.Description
	}
	if in.Status != nil {
		ticket.Status = *in.Status
	}
	if in.Priority != nil {
		ticket.Priority = *in.Priority
	}
	if in.CategoryID != nil {
		ticket.CategoryID = in.CategoryID
	}
	if in.DepartmentID != nil {
		ticket.DepartmentID = in.DepartmentID
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	if ticket.Status != oldStatus {
		s.notifier.TicketStatusChanged(ctx, ticket, oldStatus, actor)
	}
	return ticket, nil
}

// Delete removes a ticket. Admins delete anything; clients delete their own
// tickets while still open; support never deletes.
func (s *ticketService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTicketNotFound
		}
		return fmt.Errorf("load ticket: %w", err)
	}
	if !permission.CanDelete(actor, ticket) {
		return apperrors.ErrForbidden
	}
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// Assign hands a ticket to a support user. Admin only; a non-support target
// is a validation error, not a permission denial, and leaves the assignee
// unchanged.
func (s *ticketService) Assign(ctx context.Context, actor *model.User, id, assigneeID uuid.UUID) (*model.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !permission.CanAssign(actor) {
		return nil, apperrors.ErrForbidden
	}
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("load ticket: %w", err)
	}

	assignee, err := s.resolveAssignee(ctx, "user_id", assigneeID)
	if err != nil {
		return nil, err
	}

	ticket.AssignedToID = &assignee.ID
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}

	updated, err := s.ticketRepo.FindByID(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("reload ticket: %w", err)
	}
	return updated, nil
}
