package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"helpdesk/internal/config"
	"helpdesk/internal/db"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

var departments = []model.Department{
	{Name: "Technical Support", Code: model.DeptTechSupport},
	{Name: "Customer Service", Code: model.DeptCustomerService},
	{Name: "Billing", Code: model.DeptBilling},
	{Name: "Product Support", Code: model.DeptProductSupport},
	{Name: "Sales", Code: model.DeptSales},
	{Name: "Security", Code: model.DeptSecurity},
	{Name: "Administration", Code: model.DeptAdmin},
	{Name: "Other", Code: model.DeptOther},
}

var categories = []model.Category{
	{Name: "Technical Issue", Code: model.CategoryTechnical},
	{Name: "Account", Code: model.CategoryAccount},
	{Name: "Billing Question", Code: model.CategoryBilling},
	{Name: "Product", Code: model.CategoryProduct},
	{Name: "Feedback", Code: model.CategoryFeedback},
	{Name: "Security", Code: model.CategorySecurity},
	{Name: "Other", Code: model.CategoryOther},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.NotificationPreference{},
		&model.Department{},
		&model.Category{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	created, err := seedDepartments(ctx, repository.NewDepartmentRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}
	log.Printf("Departments seeded: %d new", created)

	created, err = seedCategories(ctx, repository.NewCategoryRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories seeded: %d new", created)

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedDepartments inserts the built-in departments that are missing. Existing
// rows are left untouched so renames done through the API survive re-runs.
func seedDepartments(ctx context.Context, repo repository.DepartmentRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing departments: %w", err)
	}
	have := make(map[model.DepartmentCode]bool, len(existing))
	for _, d := range existing {
		have[d.Code] = true
	}

	created := 0
	for _, d := range departments {
		if have[d.Code] {
			continue
		}
		dept := d
		if err := repo.Create(ctx, &dept); err != nil {
			return created, fmt.Errorf("creating department %s: %w", d.Code, err)
		}
		created++
	}
	return created, nil
}

func seedCategories(ctx context.Context, repo repository.CategoryRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing categories: %w", err)
	}
	have := make(map[model.CategoryCode]bool, len(existing))
	for _, c := range existing {
		have[c.Code] = true
	}

	created := 0
	for _, c := range categories {
		if have[c.Code] {
			continue
		}
		cat := c
		if err := repo.Create(ctx, &cat); err != nil {
			return created, fmt.Errorf("creating category %s: %w", c.Code, err)
		}
		created++
	}
	return created, nil
}

// seedAdmin provisions a first admin account so a fresh install can log in.
// Credentials come from ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	username := getEnv("ADMIN_USERNAME", "admin")
	email := getEnv("ADMIN_EMAIL", "admin@localhost")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	existing, err := repo.FindByUsername(ctx, username)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user %q already exists, skipping", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		NotificationPreference: &model.NotificationPreference{
			EmailNotifications: true,
		},
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	log.Printf("Admin user %q created", username)
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
