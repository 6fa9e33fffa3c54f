package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/service"
)

// TicketHandler handles ticket endpoints.
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicketRequest represents a new ticket. Any submitted status is
// ignored; tickets always start open.
type CreateTicketRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required"`
	Priority     string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	CategoryID   *uint   `json:"category_id"`
	DepartmentID *uint   `json:"department_id"`
	AssignedToID *string `json:"assigned_to_id" validate:"omitempty,uuid"`
}

// UpdateTicketRequest represents a partial ticket update.
type UpdateTicketRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=200"`
	Description  *string `json:"description"`
	Status       *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed reopened"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	CategoryID   *uint   `json:"category_id"`
	DepartmentID *uint   `json:"department_id"`
}

// AssignTicketRequest names the support user to hand the ticket to.
type AssignTicketRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// TicketListResponse is a paginated ticket listing.
type TicketListResponse struct {
	Tickets  []model.Ticket `json:"tickets"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// List godoc
// @Summary List tickets visible to the caller
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param category_id query int false "Filter by category"
// @Param department_id query int false "Filter by department"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} TicketListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	in := service.ListTicketsInput{
		Search: c.QueryParam("search"),
	}
	if v := c.QueryParam("status"); v != "" {
		status := model.TicketStatus(v)
		in.Status = &status
	}
	if v := c.QueryParam("priority"); v != "" {
		priority := model.TicketPriority(v)
		in.Priority = &priority
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid category_id", Code: "VALIDATION_ERROR", Field: "category_id",
			})
		}
		u := uint(id)
		in.CategoryID = &u
	}
	if v := c.QueryParam("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid department_id", Code: "VALIDATION_ERROR", Field: "department_id",
			})
		}
		u := uint(id)
		in.DepartmentID = &u
	}
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	tickets, total, err := h.ticketService.List(c.Request().Context(), Actor(c), in)
	if err != nil {
		return serviceError(err)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 || in.PageSize > 100 {
		in.PageSize = 10
	}
	return c.JSON(http.StatusOK, TicketListResponse{
		Tickets:  tickets,
		Total:    total,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
}

// Create godoc
// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 201 {object} model.Ticket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.CreateTicketInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     model.TicketPriority(req.Priority),
		CategoryID:   req.CategoryID,
		DepartmentID: req.DepartmentID,
	}
	if req.AssignedToID != nil {
		id, err := uuid.Parse(*req.AssignedToID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid assigned_to_id", Code: "VALIDATION_ERROR", Field: "assigned_to_id",
			})
		}
		in.AssignedToID = &id
	}

	ticket, err := h.ticketService.Create(c.Request().Context(), Actor(c), in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

// Get godoc
// @Summary Ticket detail with nested comments
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} model.Ticket
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	ticket, err := h.ticketService.Get(c.Request().Context(), Actor(c), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// Update godoc
// @Summary Update a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} model.Ticket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	var req UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateTicketInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		DepartmentID: req.DepartmentID,
	}
	if req.Status != nil {
		status := model.TicketStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := model.TicketPriority(*req.Priority)
		in.Priority = &priority
	}

	ticket, err := h.ticketService.Update(c.Request().Context(), Actor(c), id, in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// Delete godoc
// @Summary Delete a ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	if err := h.ticketService.Delete(c.Request().Context(), Actor(c), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "ticket deleted successfully",
	})
}

// Assign godoc
// @Summary Assign a ticket to a support user
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body AssignTicketRequest true "Assignee"
// @Success 200 {object} model.Ticket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id}/assign [post]
func (h *TicketHandler) Assign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	var req AssignTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user_id", Code: "VALIDATION_ERROR", Field: "user_id",
		})
	}

	ticket, err := h.ticketService.Assign(c.Request().Context(), Actor(c), id, assigneeID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// serviceError converts a service-layer error into an echo HTTP error using
// the shared taxonomy mapping.
func serviceError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
