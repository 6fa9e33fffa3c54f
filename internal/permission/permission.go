// Package permission decides who may do what to a ticket. Every check is a
// pure function of the actor's role and the ticket's ownership/assignment;
// no storage is consulted beyond the values passed in.
package permission

import (
	"helpdesk/internal/model"
)

// ClientEditableFields are the only ticket fields a client may touch on
// update.
var ClientEditableFields = map[string]bool{
	"title":       true,
	"description": true,
}

func isAssignee(actor *model.User, ticket *model.Ticket) bool {
	return ticket.AssignedToID != nil && *ticket.AssignedToID == actor.ID
}

func isCreator(actor *model.User, ticket *model.Ticket) bool {
	return ticket.CreatedByID == actor.ID
}

// CanView reports whether the actor may see the ticket. Admins see all,
// support sees tickets assigned to them or unassigned, clients see their own.
func CanView(actor *model.User, ticket *model.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSupport:
		return ticket.AssignedToID == nil || isAssignee(actor, ticket)
	case model.RoleClient:
		return isCreator(actor, ticket)
	}
	return false
}

// CanUpdate reports whether the actor may apply an update touching the named
// fields. Admins update anything, support updates tickets assigned to them,
// clients update only the title and description of their own tickets.
func CanUpdate(actor *model.User, ticket *model.Ticket, touched []string) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSupport:
		return isAssignee(actor, ticket)
	case model.RoleClient:
		if !isCreator(actor, ticket) {
			return false
		}
		for _, f := range touched {
			if !ClientEditableFields[f] {
				return false
			}
		}
		return true
	}
	return false
}

// CanDelete reports whether the actor may delete the ticket. Support never
// deletes; clients delete their own tickets only while still open.
func CanDelete(actor *model.User, ticket *model.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSupport:
		return false
	case model.RoleClient:
		return isCreator(actor, ticket) && ticket.Status == model.StatusOpen
	}
	return false
}

// CanComment reports whether the actor may comment on the ticket.
func CanComment(actor *model.User, ticket *model.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSupport:
		return isAssignee(actor, ticket)
	case model.RoleClient:
		return isCreator(actor, ticket)
	}
	return false
}

// CanAssign reports whether the actor may assign tickets at all. Whether the
// chosen assignee is a valid target (role support) is a validation concern,
// not a permission one.
func CanAssign(actor *model.User) bool {
	return actor != nil && actor.Role == model.RoleAdmin
}
