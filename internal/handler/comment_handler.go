package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"helpdesk/internal/service"
)

// CommentHandler handles ticket comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a new comment on a ticket.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// List godoc
// @Summary List comments on a ticket, newest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {array} model.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	comments, err := h.commentService.ListByTicket(c.Request().Context(), Actor(c), ticketID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Create godoc
// @Summary Comment on a ticket
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body CreateCommentRequest true "Comment text"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), Actor(c), ticketID, req.Text)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}
