package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"helpdesk/internal/service"
)

// NotificationHandler handles the caller's in-app notification feed and
// email preferences.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// UpdatePreferenceRequest toggles email delivery for the caller.
type UpdatePreferenceRequest struct {
	EmailNotifications *bool `json:"email_notifications" validate:"required"`
}

// List godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Notification
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.notificationService.List(c.Request().Context(), Actor(c).ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), Actor(c).ID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "notification marked as read",
	})
}

// MarkAllRead godoc
// @Summary Mark every notification of the caller as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), Actor(c).ID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "all notifications marked as read",
	})
}

// GetPreference godoc
// @Summary Get the caller's notification preferences
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.NotificationPreference
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications/preferences [get]
func (h *NotificationHandler) GetPreference(c echo.Context) error {
	pref, err := h.notificationService.GetPreference(c.Request().Context(), Actor(c).ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreference godoc
// @Summary Update the caller's notification preferences
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePreferenceRequest true "Preference data"
// @Success 200 {object} model.NotificationPreference
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications/preferences [put]
func (h *NotificationHandler) UpdatePreference(c echo.Context) error {
	var req UpdatePreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pref, err := h.notificationService.UpdatePreference(c.Request().Context(), Actor(c).ID, *req.EmailNotifications)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pref)
}
