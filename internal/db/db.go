package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/config"
	"github.com/servquick/household-services/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := Seed(db, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.CustomerProfile{},
		&models.ProfessionalProfile{},
		&models.ServiceRequest{},
		&models.AuditLog{},
	)
}

// Seed ensures the admin account and the default catalog exist. Idempotent.
func Seed(db *gorm.DB, adminPassword string) error {
	var admin models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		admin = models.User{
			Username:     "admin",
			PasswordHash: string(hashed),
			Name:         "Admin",
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	defaults := []models.Service{
		{Name: "Salon", Price: 300.0, TimeRequired: "1 hour", Description: "Home Salon Services"},
		{Name: "Cleaning", Price: 400.0, TimeRequired: "3 hours", Description: "Home Cleaning Services"},
		{Name: "Electrician", Price: 200.0, TimeRequired: "1.5 hours", Description: "Electrical Repairs and Installations"},
		{Name: "Plumbing", Price: 250.0, TimeRequired: "1.5 hours", Description: "Plumbing Repairs and Installations"},
	}

	for _, svc := range defaults {
		var existing models.Service
		err := db.Where("name = ?", svc.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&svc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
