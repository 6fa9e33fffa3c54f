package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"helpdesk/internal/mailer"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

// Notifier reacts to the three ticket events by fanning out in-app
// notification rows and transactional email. It is called explicitly from
// the ticket/comment write path after the primary mutation has committed;
// its failures are logged and never surface to the caller, so a mail or
// notification error cannot undo or block an already-committed write.
type Notifier interface {
	TicketCreated(ctx context.Context, ticket *model.Ticket)
	TicketStatusChanged(ctx context.Context, ticket *model.Ticket, oldStatus model.TicketStatus, actor *model.User)
	CommentCreated(ctx context.Context, comment *model.Comment, ticket *model.Ticket)
}

type notifier struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	mailer    mailer.Mailer
	logger    *zap.SugaredLogger
	baseURL   string
}

// NewNotifier creates the notification fan-out component.
func NewNotifier(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	m mailer.Mailer,
	logger *zap.SugaredLogger,
	baseURL string,
) Notifier {
	return &notifier{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		mailer:    m,
		logger:    logger,
		baseURL:   baseURL,
	}
}

func ticketLink(ticket *model.Ticket) string {
	return fmt.Sprintf("/tickets/%s", ticket.ID)
}

func (n *notifier) createRow(ctx context.Context, user *model.User, title, message, link string) {
	row := &model.Notification{
		UserID:  user.ID,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := n.notifRepo.Create(ctx, row); err != nil {
		n.logger.Errorw("create notification row", "user_id", user.ID, "title", title, "error", err)
	}
}

// wantsEmail reports whether the user should receive email: they need an
// address and a preference row with email notifications switched on.
func (n *notifier) wantsEmail(ctx context.Context, user *model.User) bool {
	if user == nil || user.Email == "" {
		return false
	}
	pref, err := n.notifRepo.GetPreference(ctx, user.ID)
	if err != nil {
		return false
	}
	return pref.EmailNotifications
}

func (n *notifier) sendMail(to []string, subject, body string) {
	if len(to) == 0 {
		return
	}
	if err := n.mailer.Send(to, subject, body); err != nil {
		n.logger.Errorw("send email", "subject", subject, "recipients", len(to), "error", err)
	}
}

// TicketCreated notifies every admin (in-app unconditionally, email per
// preference) plus the assignee when one was set at creation.
func (n *notifier) TicketCreated(ctx context.Context, ticket *model.Ticket) {
	link := ticketLink(ticket)
	creatorName := ""
	if ticket.CreatedBy != nil {
		creatorName = ticket.CreatedBy.Username
	}

	admins, err := n.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		n.logger.Errorw("list admins for ticket-created fan-out", "ticket_id", ticket.ID, "error", err)
		admins = nil
	}

	var recipients []string
	for i := range admins {
		admin := &admins[i]
		n.createRow(ctx, admin, "New Ticket Created",
			fmt.Sprintf("A new ticket %q has been created by %s.", ticket.Title, creatorName), link)
		if n.wantsEmail(ctx, admin) {
			recipients = append(recipients, admin.Email)
		}
	}

	if ticket.AssignedTo != nil {
		n.createRow(ctx, ticket.AssignedTo, "Ticket Assigned to You",
			fmt.Sprintf("Ticket %q has been assigned to you.", ticket.Title), link)
		if n.wantsEmail(ctx, ticket.AssignedTo) {
			recipients = append(recipients, ticket.AssignedTo.Email)
		}
	}

	subject := fmt.Sprintf("New Ticket Created: %s", ticket.Title)
	body := fmt.Sprintf(
		"A new ticket has been created:\n\nTitle: %s\nDescription: %s\nPriority: %s\nCreated by: %s\n\nView the ticket at: %s%s\n",
		ticket.Title, ticket.Description, ticket.Priority, creatorName, n.baseURL, link)
	n.sendMail(recipients, subject, body)
}

// TicketStatusChanged notifies the creator (always) and the assignee when
// present and not the actor who made the change. Email goes to creator and
// assignee per their preference.
func (n *notifier) TicketStatusChanged(ctx context.Context, ticket *model.Ticket, oldStatus model.TicketStatus, actor *model.User) {
	link := ticketLink(ticket)

	var recipients []string
	if ticket.CreatedBy != nil {
		n.createRow(ctx, ticket.CreatedBy, "Ticket Status Updated",
			fmt.Sprintf("Your ticket %q status has been changed from %s to %s.", ticket.Title, oldStatus, ticket.Status), link)
		if n.wantsEmail(ctx, ticket.CreatedBy) {
			recipients = append(recipients, ticket.CreatedBy.Email)
		}
	}

	if ticket.AssignedTo != nil {
		if actor == nil || ticket.AssignedTo.ID != actor.ID {
			n.createRow(ctx, ticket.AssignedTo, "Ticket Status Updated",
				fmt.Sprintf("Ticket %q status has been changed from %s to %s.", ticket.Title, oldStatus, ticket.Status), link)
		}
		if n.wantsEmail(ctx, ticket.AssignedTo) {
			recipients = append(recipients, ticket.AssignedTo.Email)
		}
	}

	subject := fmt.Sprintf("Ticket Status Updated: %s", ticket.Title)
	body := fmt.Sprintf(
		"A ticket's status has been updated:\n\nTitle: %s\nPrevious Status: %s\nNew Status: %s\nPriority: %s\n\nView the ticket at: %s%s\n",
		ticket.Title, oldStatus, ticket.Status, ticket.Priority, n.baseURL, link)
	n.sendMail(recipients, subject, body)
}

// CommentCreated notifies the creator and assignee when they are not the
// comment author, plus every admin except the author. The admin broadcast is
// in-app only; email goes to creator and assignee per preference.
func (n *notifier) CommentCreated(ctx context.Context, comment *model.Comment, ticket *model.Ticket) {
	link := ticketLink(ticket)
	authorName := ""
	if comment.Author != nil {
		authorName = comment.Author.Username
	}

	var recipients []string
	if ticket.CreatedBy != nil && ticket.CreatedBy.ID != comment.AuthorID {
		n.createRow(ctx, ticket.CreatedBy, "New Comment on Your Ticket",
			fmt.Sprintf("A new comment has been added to your ticket %q by %s.", ticket.Title, authorName), link)
		if n.wantsEmail(ctx, ticket.CreatedBy) {
			recipients = append(recipients, ticket.CreatedBy.Email)
		}
	}

	if ticket.AssignedTo != nil && ticket.AssignedTo.ID != comment.AuthorID {
		n.createRow(ctx, ticket.AssignedTo, "New Comment on Assigned Ticket",
			fmt.Sprintf("A new comment has been added to ticket %q by %s.", ticket.Title, authorName), link)
		if n.wantsEmail(ctx, ticket.AssignedTo) {
			recipients = append(recipients, ticket.AssignedTo.Email)
		}
	}

	admins, err := n.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		n.logger.Errorw("list admins for comment-created fan-out", "ticket_id", ticket.ID, "error", err)
		admins = nil
	}
	for i := range admins {
		admin := &admins[i]
		if admin.ID == comment.AuthorID {
			continue
		}
		n.createRow(ctx, admin, "New Comment on Ticket",
			fmt.Sprintf("A new comment has been added to ticket %q by %s.", ticket.Title, authorName), link)
	}

	subject := fmt.Sprintf("New Comment on Ticket: %s", ticket.Title)
	body := fmt.Sprintf(
		"A new comment has been added to a ticket:\n\nTicket: %s\nComment by: %s\nComment: %s\n\nView the ticket at: %s%s\n",
		ticket.Title, authorName, comment.Text, n.baseURL, link)
	n.sendMail(recipients, subject, body)
}
