package handlers

import (
	"context"
	"net/url"

	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlbuild"
)

// CompanyStore is implemented by services.CompanyService.
type CompanyStore interface {
	Create(ctx context.Context, req dtos.CompanyCreationRequest) (*models.Company, error)
	FindAll(ctx context.Context) ([]models.Company, error)
	Find(ctx context.Context, query url.Values) ([]models.Company, error)
	Get(ctx context.Context, handle string) (*models.CompanyDetail, error)
	Update(ctx context.Context, handle string, fields sqlbuild.FieldMap) (*models.Company, error)
	Remove(ctx context.Context, handle string) error
}

// JobStore is implemented by services.JobService.
type JobStore interface {
	Create(ctx context.Context, req dtos.JobCreationRequest) (*models.Job, error)
	FindAll(ctx context.Context) ([]models.Job, error)
	Find(ctx context.Context, query url.Values) ([]models.Job, error)
	Get(ctx context.Context, id uint) (*models.Job, error)
	Update(ctx context.Context, id uint, fields sqlbuild.FieldMap) (*models.Job, error)
	Remove(ctx context.Context, id uint) error
}

// UserStore is implemented by services.UserService.
type UserStore interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req dtos.RegisterRequest, isAdmin bool) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, fields sqlbuild.FieldMap) (*models.User, error)
	Remove(ctx context.Context, username string) error
	ApplyToJob(ctx context.Context, username string, jobID uint) error
}

// JobExtractor is implemented by services.LLMService.
type JobExtractor interface {
	ExtractJobDetails(ctx context.Context, rawHTML string) (*dtos.JobDraft, error)
}
