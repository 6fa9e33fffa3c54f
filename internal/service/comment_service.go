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

// CommentService handles ticket comments. Comments are append-only.
type CommentService interface {
	Create(ctx context.Context, actor *model.User, ticketID uuid.UUID, text string) (*model.Comment, error)
	ListByTicket(ctx context.Context, actor *model.User, ticketID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	ticketRepo  repository.TicketRepository
	notifier    Notifier
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, ticketRepo repository.TicketRepository, notifier Notifier) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		notifier:    notifier,
	}
}

func (s *commentService) loadTicket(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("load ticket: %w", err)
	}
	return ticket, nil
}

// Create appends a comment to a ticket and fires the comment-created event.
func (s *commentService) Create(ctx context.Context, actor *model.User, ticketID uuid.UUID, text string) (*model.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !permission.CanComment(actor, ticket) {
		return nil, apperrors.ErrForbidden
	}

	comment := &model.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Text:     text,
		Author:   actor,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.notifier.CommentCreated(ctx, comment, ticket)
	return comment, nil
}

// ListByTicket returns the ticket's comments, newest first, under the same
// visibility rule as viewing the ticket itself.
func (s *commentService) ListByTicket(ctx context.Context, actor *model.User, ticketID uuid.UUID) ([]model.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !permission.CanView(actor, ticket) {
		return nil, apperrors.ErrForbidden
	}
	return s.commentRepo.ListByTicket(ctx, ticketID)
}
