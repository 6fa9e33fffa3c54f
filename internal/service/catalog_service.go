package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

// CatalogService manages the department and category catalogs. Admin-only at
// the routing layer.
type CatalogService interface {
	CreateDepartment(ctx context.Context, name string, code model.DepartmentCode) (*model.Department, error)
	UpdateDepartment(ctx context.Context, id uint, name string, code model.DepartmentCode) (*model.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error
	ListDepartments(ctx context.Context) ([]model.Department, error)

	CreateCategory(ctx context.Context, name string, code model.CategoryCode) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string, code model.CategoryCode) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type catalogService struct {
	deptRepo repository.DepartmentRepository
	catRepo  repository.CategoryRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(deptRepo repository.DepartmentRepository, catRepo repository.CategoryRepository) CatalogService {
	return &catalogService{deptRepo: deptRepo, catRepo: catRepo}
}

func (s *catalogService) CreateDepartment(ctx context.Context, name string, code model.DepartmentCode) (*model.Department, error) {
	if code == "" {
		code = model.DeptOther
	}
	if !code.Valid() {
		return nil, apperrors.NewValidationError("code", "unknown department code")
	}
	dept := &model.Department{Name: name, Code: code}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return dept, nil
}

func (s *catalogService) UpdateDepartment(ctx context.Context, id uint, name string, code model.DepartmentCode) (*model.Department, error) {
	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("load department: %w", err)
	}
	if name != "" {
		dept.Name = name
	}
	if code != "" {
		if !code.Valid() {
			return nil, apperrors.NewValidationError("code", "unknown department code")
		}
		dept.Code = code
	}
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, fmt.Errorf("update department: %w", err)
	}
	return dept, nil
}

func (s *catalogService) DeleteDepartment(ctx context.Context, id uint) error {
	if _, err := s.deptRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("load department: %w", err)
	}
	return s.deptRepo.Delete(ctx, id)
}

func (s *catalogService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, name string, code model.CategoryCode) (*model.Category, error) {
	if code == "" {
		code = model.CategoryOther
	}
	if !code.Valid() {
		return nil, apperrors.NewValidationError("code", "unknown category code")
	}
	cat := &model.Category{Name: name, Code: code}
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, name string, code model.CategoryCode) (*model.Category, error) {
	cat, err := s.catRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	if name != "" {
		cat.Name = name
	}
	if code != "" {
		if !code.Valid() {
			return nil, apperrors.NewValidationError("code", "unknown category code")
		}
		cat.Code = code
	}
	if err := s.catRepo.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.catRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("load category: %w", err)
	}
	return s.catRepo.Delete(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catRepo.List(ctx)
}
