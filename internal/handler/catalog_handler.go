package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"helpdesk/internal/model"
	"helpdesk/internal/service"
)

// CatalogHandler handles department and category management. Listing is open
// to every authenticated user so ticket forms can populate their dropdowns;
// the write endpoints sit behind the admin guard.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CatalogEntryRequest represents a department or category payload.
type CatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code"`
}

func catalogID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ListDepartments godoc
// @Summary List departments
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Department
// @Failure 401 {object} errors.ErrorResponse
// @Router /departments [get]
func (h *CatalogHandler) ListDepartments(c echo.Context) error {
	departments, err := h.catalogService.ListDepartments(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, departments)
}

// CreateDepartment godoc
// @Summary Create a department
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CatalogEntryRequest true "Department data"
// @Success 201 {object} model.Department
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /departments [post]
func (h *CatalogHandler) CreateDepartment(c echo.Context) error {
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	department, err := h.catalogService.CreateDepartment(c.Request().Context(), req.Name, model.DepartmentCode(req.Code))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, department)
}

// UpdateDepartment godoc
// @Summary Update a department
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body CatalogEntryRequest true "Department data"
// @Success 200 {object} model.Department
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{id} [put]
func (h *CatalogHandler) UpdateDepartment(c echo.Context) error {
	id, err := catalogID(c)
	if err != nil {
		return err
	}
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	department, err := h.catalogService.UpdateDepartment(c.Request().Context(), id, req.Name, model.DepartmentCode(req.Code))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, department)
}

// DeleteDepartment godoc
// @Summary Delete a department
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{id} [delete]
func (h *CatalogHandler) DeleteDepartment(c echo.Context) error {
	id, err := catalogID(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteDepartment(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "department deleted successfully",
	})
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CatalogEntryRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	category, err := h.catalogService.CreateCategory(c.Request().Context(), req.Name, model.CategoryCode(req.Code))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body CatalogEntryRequest true "Category data"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := catalogID(c)
	if err != nil {
		return err
	}
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	category, err := h.catalogService.UpdateCategory(c.Request().Context(), id, req.Name, model.CategoryCode(req.Code))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := catalogID(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteCategory(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "category deleted successfully",
	})
}
