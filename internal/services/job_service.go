package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/filters"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlbuild"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const jobColumns = `id, title, salary, equity, company_handle`

var jobAliases = sqlbuild.AliasTable{
	"companyHandle": "company_handle",
}

var jobRules = []sqlbuild.WhereRule{
	{Key: "title", Column: "title", Operator: "ILIKE", Kind: filters.Substring},
	{Key: "minSalary", Column: "salary", Operator: ">=", Kind: filters.Min, Cast: "numeric"},
	{Key: "maxSalary", Column: "salary", Operator: "<=", Kind: filters.Max, Cast: "numeric"},
	{Key: "hasEquity", Column: "equity", Operator: ">", Kind: filters.Flag},
}

// jobRow is a jobs row as stored. Postgres returns NUMERIC as text, so
// equity is read as a decimal and converted by toJob.
type jobRow struct {
	ID            uint
	Title         string
	Salary        *int
	Equity        decimal.NullDecimal
	CompanyHandle string
}

func (r jobRow) toJob() models.Job {
	job := models.Job{
		ID:            r.ID,
		Title:         r.Title,
		Salary:        r.Salary,
		CompanyHandle: r.CompanyHandle,
	}
	if r.Equity.Valid {
		equity := r.Equity.Decimal.InexactFloat64()
		job.Equity = &equity
	}
	return job
}

func toJobs(rows []jobRow) []models.Job {
	jobs := make([]models.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, r.toJob())
	}
	return jobs
}

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// Create inserts a job for an existing company.
func (s *JobService) Create(ctx context.Context, req dtos.JobCreationRequest) (*models.Job, error) {
	var row jobRow
	err := s.DB.WithContext(ctx).Raw(
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		req.Title, req.Salary, req.Equity, req.CompanyHandle,
	).Scan(&row).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &apperrors.NotFoundForIdentifierError{Entity: "company", ID: req.CompanyHandle}
		}
		return nil, fmt.Errorf("create job: %w", err)
	}
	job := row.toJob()
	return &job, nil
}

// FindAll lists every job ordered by title.
func (s *JobService) FindAll(ctx context.Context) ([]models.Job, error) {
	var rows []jobRow
	err := s.DB.WithContext(ctx).Raw(`SELECT ` + jobColumns + ` FROM jobs ORDER BY title`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return toJobs(rows), nil
}

// Find validates the search parameters in query and runs the search.
func (s *JobService) Find(ctx context.Context, query url.Values) ([]models.Job, error) {
	set, err := filters.Validate(query, filters.JobSpec)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, set)
}

// Search lists the jobs matching set. When set carries any filter and
// nothing matches, it returns a NotFoundForFilterError.
func (s *JobService) Search(ctx context.Context, set filters.Set) ([]models.Job, error) {
	where := sqlbuild.BuildWhereClause(set, jobRules)

	var rows []jobRow
	err := s.DB.WithContext(ctx).Raw(
		`SELECT `+jobColumns+` FROM jobs `+where.SQL()+` ORDER BY title`,
		where.Values...,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	if len(rows) == 0 && !set.Empty() {
		return nil, &apperrors.NotFoundForFilterError{Entity: "jobs"}
	}
	return toJobs(rows), nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var row jobRow
	res := s.DB.WithContext(ctx).Raw(`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("get job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "job", ID: id}
	}
	job := row.toJob()
	return &job, nil
}

// Update applies a partial update. Only the fields present in fields change.
func (s *JobService) Update(ctx context.Context, id uint, fields sqlbuild.FieldMap) (*models.Job, error) {
	set, err := sqlbuild.BuildSetClause(fields, jobAliases)
	if err != nil {
		return nil, err
	}

	var row jobRow
	res := s.DB.WithContext(ctx).Raw(
		`UPDATE jobs SET `+set.Clause+
			` WHERE id = `+sqlbuild.Placeholder(set.Next())+
			` RETURNING `+jobColumns,
		append(set.Values, id)...,
	).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("update job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "job", ID: id}
	}
	job := row.toJob()
	return &job, nil
}

func (s *JobService) Remove(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Exec(`DELETE FROM jobs WHERE id = $1`, id)
	if res.Error != nil {
		return fmt.Errorf("remove job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundForIdentifierError{Entity: "job", ID: id}
	}
	return nil
}
