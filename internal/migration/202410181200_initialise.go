package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/justsurfingit/jobly/internal/models"
	"gorm.io/gorm"
)

var Initialise = &gormigrate.Migration{
	ID: "202410181200-jobly-init",
	Migrate: func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Company{}, &models.Job{}, &models.User{}, &models.Application{})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable(&models.Application{}, &models.User{}, &models.Job{}, &models.Company{})
	},
}

// All lists every migration in the order it must run.
func All() []*gormigrate.Migration {
	return []*gormigrate.Migration{Initialise}
}
