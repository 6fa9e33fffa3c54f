package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

func newTicketService(
	ticketRepo *MockTicketRepository,
	userRepo *MockUserRepository,
	deptRepo *MockDepartmentRepository,
	catRepo *MockCategoryRepository,
	notifier *MockNotifier,
) TicketService {
	return NewTicketService(ticketRepo, userRepo, deptRepo, catRepo, notifier)
}

func TestTicketService_Create_ClientForcedOpenAndUnassigned(t *testing.T) {
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}
	supportID := uuid.New()

	ticketRepo := new(MockTicketRepository)
	notifier := new(MockNotifier)

	var created *model.Ticket
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Ticket)
		}).Return(nil)
	ticketRepo.On("FindByID", mock.Anything, mock.Anything).Return(&model.Ticket{
		Title:       "printer on fire",
		Status:      model.StatusOpen,
		CreatedByID: client.ID,
	}, nil)
	notifier.On("TicketCreated", mock.Anything, mock.Anything).Return()

	service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), notifier)

	ticket, err := service.Create(context.Background(), client, CreateTicketInput{
		Title:        "printer on fire",
		Description:  "it is actually on fire",
		AssignedToID: &supportID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, ticket)
	// The row written ignores the client-supplied assignee and starts open.
	assert.Equal(t, model.StatusOpen, created.Status)
	assert.Nil(t, created.AssignedToID)
	assert.Equal(t, model.PriorityMedium, created.Priority)
	assert.Equal(t, client.ID, created.CreatedByID)

	ticketRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTicketService_Create_AdminWithAssignee(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	support := &model.User{ID: uuid.New(), Role: model.RoleSupport}

	ticketRepo := new(MockTicketRepository)
	userRepo := new(MockUserRepository)
	notifier := new(MockNotifier)

	userRepo.On("FindByID", mock.Anything, support.ID).Return(support, nil)

	var created *model.Ticket
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Ticket)
		}).Return(nil)
	ticketRepo.On("FindByID", mock.Anything, mock.Anything).Return(&model.Ticket{}, nil)
	notifier.On("TicketCreated", mock.Anything, mock.Anything).Return()

	service := newTicketService(ticketRepo, userRepo, new(MockDepartmentRepository), new(MockCategoryRepository), notifier)

	_, err := service.Create(context.Background(), admin, CreateTicketInput{
		Title:        "escalation",
		Description:  "assigned straight away",
		Priority:     model.PriorityHigh,
		AssignedToID: &support.ID,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, created.AssignedToID) {
		assert.Equal(t, support.ID, *created.AssignedToID)
	}
	assert.Equal(t, model.PriorityHigh, created.Priority)

	userRepo.AssertExpectations(t)
	ticketRepo.AssertExpectations(t)
}

func TestTicketService_Create_UnknownCategory(t *testing.T) {
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}
	catID := uint(42)

	catRepo := new(MockCategoryRepository)
	catRepo.On("FindByID", mock.Anything, catID).Return(nil, gorm.ErrRecordNotFound)

	service := newTicketService(new(MockTicketRepository), new(MockUserRepository), new(MockDepartmentRepository), catRepo, new(MockNotifier))

	ticket, err := service.Create(context.Background(), client, CreateTicketInput{
		Title:       "bad category",
		Description: "x",
		CategoryID:  &catID,
	})

	assert.Nil(t, ticket)
	var verr *apperrors.ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "category_id", verr.Field)
	}
}

func TestTicketService_Update_StatusChangeFiresEvent(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	ticketID := uuid.New()
	existing := &model.Ticket{ID: ticketID, Title: "t", Status: model.StatusOpen, CreatedByID: uuid.New()}

	ticketRepo := new(MockTicketRepository)
	notifier := new(MockNotifier)

	ticketRepo.On("FindByID", mock.Anything, ticketID).Return(existing, nil)
	ticketRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)
	notifier.On("TicketStatusChanged", mock.Anything, mock.Anything, model.StatusOpen, admin).Return()

	service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), notifier)

	status := model.StatusResolved
	ticket, err := service.Update(context.Background(), admin, ticketID, UpdateTicketInput{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusResolved, ticket.Status)
	notifier.AssertExpectations(t)
}

func TestTicketService_Update_SameStatusIsEventFree(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	ticketID := uuid.New()
	existing := &model.Ticket{ID: ticketID, Status: model.StatusOpen, CreatedByID: uuid.New()}

	ticketRepo := new(MockTicketRepository)
	notifier := new(MockNotifier)

	ticketRepo.On("FindByID", mock.Anything, ticketID).Return(existing, nil)
	ticketRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)

	service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), notifier)

	status := model.StatusOpen
	_, err := service.Update(context.Background(), admin, ticketID, UpdateTicketInput{Status: &status})

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "TicketStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_Update_ClientFieldRestriction(t *testing.T) {
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}
	ticketID := uuid.New()
	existing := &model.Ticket{ID: ticketID, Status: model.StatusOpen, CreatedByID: client.ID}

	ticketRepo := new(MockTicketRepository)
	ticketRepo.On("FindByID", mock.Anything, ticketID).Return(existing, nil)

	service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

	status := model.StatusClosed
	ticket, err := service.Update(context.Background(), client, ticketID, UpdateTicketInput{Status: &status})

	assert.Nil(t, ticket)
	assert.Equal(t, apperrors.ErrForbidden, err)
	ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTicketService_Assign(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	support := &model.User{ID: uuid.New(), Role: model.RoleSupport}
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}
	targetClient := &model.User{ID: uuid.New(), Role: model.RoleClient}
	ticketID := uuid.New()

	t.Run("admin assigns to support", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		userRepo := new(MockUserRepository)

		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusOpen}, nil)
		userRepo.On("FindByID", mock.Anything, support.ID).Return(support, nil)
		ticketRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)

		service := newTicketService(ticketRepo, userRepo, new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

		ticket, err := service.Assign(context.Background(), admin, ticketID, support.ID)
		assert.NoError(t, err)
		if assert.NotNil(t, ticket.AssignedToID) {
			assert.Equal(t, support.ID, *ticket.AssignedToID)
		}
	})

	t.Run("assigning to a client is a validation error", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		userRepo := new(MockUserRepository)

		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusOpen}, nil)
		userRepo.On("FindByID", mock.Anything, targetClient.ID).Return(targetClient, nil)

		service := newTicketService(ticketRepo, userRepo, new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

		ticket, err := service.Assign(context.Background(), admin, ticketID, targetClient.ID)
		assert.Nil(t, ticket)
		var verr *apperrors.ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "user_id", verr.Field)
		}
		// The assignment is left untouched.
		ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("support may not assign", func(t *testing.T) {
		service := newTicketService(new(MockTicketRepository), new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

		ticket, err := service.Assign(context.Background(), support, ticketID, support.ID)
		assert.Nil(t, ticket)
		assert.Equal(t, apperrors.ErrForbidden, err)
	})

	t.Run("client may not assign", func(t *testing.T) {
		service := newTicketService(new(MockTicketRepository), new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

		ticket, err := service.Assign(context.Background(), client, ticketID, support.ID)
		assert.Nil(t, ticket)
		assert.Equal(t, apperrors.ErrForbidden, err)
	})
}

func TestTicketService_Delete(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	support := &model.User{ID: uuid.New(), Role: model.RoleSupport}
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}
	ticketID := uuid.New()

	t.Run("admin deletes", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusClosed, CreatedByID: client.ID}, nil)
		ticketRepo.On("Delete", mock.Anything, ticketID).Return(nil)

		service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))
		assert.NoError(t, service.Delete(context.Background(), admin, ticketID))
		ticketRepo.AssertExpectations(t)
	})

	t.Run("client deletes own open ticket", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusOpen, CreatedByID: client.ID}, nil)
		ticketRepo.On("Delete", mock.Anything, ticketID).Return(nil)

		service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))
		assert.NoError(t, service.Delete(context.Background(), client, ticketID))
	})

	t.Run("client blocked once ticket left open", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusInProgress, CreatedByID: client.ID}, nil)

		service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))
		assert.Equal(t, apperrors.ErrForbidden, service.Delete(context.Background(), client, ticketID))
	})

	t.Run("support never deletes", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		ticketRepo.On("FindByID", mock.Anything, ticketID).
			Return(&model.Ticket{ID: ticketID, Status: model.StatusOpen, CreatedByID: client.ID}, nil)

		service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))
		assert.Equal(t, apperrors.ErrForbidden, service.Delete(context.Background(), support, ticketID))
	})

	t.Run("missing ticket", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		ticketRepo.On("FindByID", mock.Anything, ticketID).Return(nil, gorm.ErrRecordNotFound)

		service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))
		assert.Equal(t, apperrors.ErrTicketNotFound, service.Delete(context.Background(), admin, ticketID))
	})
}

func TestTicketService_List_ScopesByRole(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	support := &model.User{ID: uuid.New(), Role: model.RoleSupport}
	client := &model.User{ID: uuid.New(), Role: model.RoleClient}

	tests := []struct {
		name   string
		actor  *model.User
		verify func(t *testing.T, f repository.TicketFilter)
	}{
		{
			name:  "admin is unrestricted",
			actor: admin,
			verify: func(t *testing.T, f repository.TicketFilter) {
				assert.Nil(t, f.CreatedByID)
				assert.Nil(t, f.AssignedToOrFree)
			},
		},
		{
			name:  "support scoped to own queue plus unassigned",
			actor: support,
			verify: func(t *testing.T, f repository.TicketFilter) {
				assert.Nil(t, f.CreatedByID)
				if assert.NotNil(t, f.AssignedToOrFree) {
					assert.Equal(t, support.ID, *f.AssignedToOrFree)
				}
			},
		},
		{
			name:  "client scoped to own tickets",
			actor: client,
			verify: func(t *testing.T, f repository.TicketFilter) {
				assert.Nil(t, f.AssignedToOrFree)
				if assert.NotNil(t, f.CreatedByID) {
					assert.Equal(t, client.ID, *f.CreatedByID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := new(MockTicketRepository)
			var got repository.TicketFilter
			ticketRepo.On("List", mock.Anything, mock.AnythingOfType("repository.TicketFilter")).
				Run(func(args mock.Arguments) {
					got = args.Get(1).(repository.TicketFilter)
				}).Return([]model.Ticket{}, int64(0), nil)

			service := newTicketService(ticketRepo, new(MockUserRepository), new(MockDepartmentRepository), new(MockCategoryRepository), new(MockNotifier))

			_, _, err := service.List(context.Background(), tt.actor, ListTicketsInput{})
			assert.NoError(t, err)
			tt.verify(t, got)
			assert.Equal(t, 10, got.Limit)
			assert.Equal(t, 0, got.Offset)
		})
	}
}
