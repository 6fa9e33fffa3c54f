package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"helpdesk/internal/model"
)

func user(role model.Role) *model.User {
	return &model.User{ID: uuid.New(), Role: role}
}

func ticketOf(creator *model.User, assignee *model.User, status model.TicketStatus) *model.Ticket {
	t := &model.Ticket{ID: uuid.New(), CreatedByID: creator.ID, Status: status}
	if assignee != nil {
		id := assignee.ID
		t.AssignedToID = &id
	}
	return t
}

func TestCanView(t *testing.T) {
	admin := user(model.RoleAdmin)
	support := user(model.RoleSupport)
	otherSupport := user(model.RoleSupport)
	client := user(model.RoleClient)
	otherClient := user(model.RoleClient)

	tests := []struct {
		name   string
		actor  *model.User
		ticket *model.Ticket
		want   bool
	}{
		{"admin sees any ticket", admin, ticketOf(client, otherSupport, model.StatusOpen), true},
		{"support sees unassigned ticket", support, ticketOf(client, nil, model.StatusOpen), true},
		{"support sees own assignment", support, ticketOf(client, support, model.StatusOpen), true},
		{"support blocked from another's assignment", support, ticketOf(client, otherSupport, model.StatusOpen), false},
		{"client sees own ticket", client, ticketOf(client, support, model.StatusOpen), true},
		{"client blocked from another's ticket", client, ticketOf(otherClient, nil, model.StatusOpen), false},
		{"nil actor sees nothing", nil, ticketOf(client, nil, model.StatusOpen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.actor, tt.ticket))
		})
	}
}

func TestCanUpdate(t *testing.T) {
	admin := user(model.RoleAdmin)
	support := user(model.RoleSupport)
	otherSupport := user(model.RoleSupport)
	client := user(model.RoleClient)
	otherClient := user(model.RoleClient)

	tests := []struct {
		name    string
		actor   *model.User
		ticket  *model.Ticket
		touched []string
		want    bool
	}{
		{"admin updates anything", admin, ticketOf(client, nil, model.StatusOpen), []string{"status", "priority"}, true},
		{"support updates own assignment", support, ticketOf(client, support, model.StatusOpen), []string{"status"}, true},
		{"support blocked from unassigned ticket", support, ticketOf(client, nil, model.StatusOpen), []string{"status"}, false},
		{"support blocked from another's assignment", support, ticketOf(client, otherSupport, model.StatusOpen), []string{"status"}, false},
		{"client edits title of own ticket", client, ticketOf(client, nil, model.StatusOpen), []string{"title"}, true},
		{"client edits description of own ticket", client, ticketOf(client, nil, model.StatusOpen), []string{"description"}, true},
		{"client blocked from status", client, ticketOf(client, nil, model.StatusOpen), []string{"status"}, false},
		{"client blocked from priority", client, ticketOf(client, nil, model.StatusOpen), []string{"priority"}, false},
		{"client blocked from mixed update", client, ticketOf(client, nil, model.StatusOpen), []string{"title", "status"}, false},
		{"client blocked from another's ticket", client, ticketOf(otherClient, nil, model.StatusOpen), []string{"title"}, false},
		{"client no-op update on own ticket allowed", client, ticketOf(client, nil, model.StatusOpen), nil, true},
		{"nil actor blocked", nil, ticketOf(client, nil, model.StatusOpen), []string{"title"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpdate(tt.actor, tt.ticket, tt.touched))
		})
	}
}

func TestCanDelete(t *testing.T) {
	admin := user(model.RoleAdmin)
	support := user(model.RoleSupport)
	client := user(model.RoleClient)
	otherClient := user(model.RoleClient)

	tests := []struct {
		name   string
		actor  *model.User
		ticket *model.Ticket
		want   bool
	}{
		{"admin deletes anything", admin, ticketOf(client, support, model.StatusClosed), true},
		{"support never deletes", support, ticketOf(client, support, model.StatusOpen), false},
		{"client deletes own open ticket", client, ticketOf(client, nil, model.StatusOpen), true},
		{"client blocked once in progress", client, ticketOf(client, support, model.StatusInProgress), false},
		{"client blocked on resolved ticket", client, ticketOf(client, support, model.StatusResolved), false},
		{"client blocked on reopened ticket", client, ticketOf(client, support, model.StatusReopened), false},
		{"client blocked from another's ticket", client, ticketOf(otherClient, nil, model.StatusOpen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.actor, tt.ticket))
		})
	}
}

func TestCanComment(t *testing.T) {
	admin := user(model.RoleAdmin)
	support := user(model.RoleSupport)
	otherSupport := user(model.RoleSupport)
	client := user(model.RoleClient)
	otherClient := user(model.RoleClient)

	tests := []struct {
		name   string
		actor  *model.User
		ticket *model.Ticket
		want   bool
	}{
		{"admin comments anywhere", admin, ticketOf(client, otherSupport, model.StatusClosed), true},
		{"support comments on own assignment", support, ticketOf(client, support, model.StatusOpen), true},
		{"support blocked from unassigned ticket", support, ticketOf(client, nil, model.StatusOpen), false},
		{"client comments on own ticket", client, ticketOf(client, support, model.StatusOpen), true},
		{"client blocked from another's ticket", client, ticketOf(otherClient, nil, model.StatusOpen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanComment(tt.actor, tt.ticket))
		})
	}
}

func TestCanAssign(t *testing.T) {
	assert.True(t, CanAssign(user(model.RoleAdmin)))
	assert.False(t, CanAssign(user(model.RoleSupport)))
	assert.False(t, CanAssign(user(model.RoleClient)))
	assert.False(t, CanAssign(nil))
}
