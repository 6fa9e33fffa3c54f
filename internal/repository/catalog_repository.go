package repository

import (
	"context"

	"gorm.io/gorm"

	"helpdesk/internal/model"
)

// DepartmentRepository defines department catalog operations.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Department{}, id).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	var dept model.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	if err := r.db.WithContext(ctx).Order("name").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// CategoryRepository defines category catalog operations.
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	Update(ctx context.Context, cat *model.Category) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *categoryRepository) Update(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var cat model.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
