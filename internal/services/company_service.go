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
	"gorm.io/gorm"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

var companyAliases = sqlbuild.AliasTable{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

var companyRules = []sqlbuild.WhereRule{
	{Key: "name", Column: "name", Operator: "ILIKE", Kind: filters.Substring},
	{Key: "minEmployees", Column: "num_employees", Operator: ">=", Kind: filters.Min, Cast: "numeric"},
	{Key: "maxEmployees", Column: "num_employees", Operator: "<=", Kind: filters.Max, Cast: "numeric"},
}

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

// Create inserts a company. A taken handle or name is a DuplicateError.
func (s *CompanyService) Create(ctx context.Context, req dtos.CompanyCreationRequest) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).Raw(
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+companyColumns,
		req.Handle, req.Name, req.Description, req.NumEmployees, req.LogoURL,
	).Scan(&company).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperrors.DuplicateError{Entity: "company", ID: req.Handle}
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return &company, nil
}

// FindAll lists every company ordered by name.
func (s *CompanyService) FindAll(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	err := s.DB.WithContext(ctx).Raw(
		`SELECT ` + companyColumns + ` FROM companies ORDER BY name`,
	).Scan(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Find validates the search parameters in query and runs the search.
// Invalid parameters fail before any statement is sent.
func (s *CompanyService) Find(ctx context.Context, query url.Values) ([]models.Company, error) {
	set, err := filters.Validate(query, filters.CompanySpec)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, set)
}

// Search lists the companies matching set. When set carries any filter and
// nothing matches, it returns a NotFoundForFilterError.
func (s *CompanyService) Search(ctx context.Context, set filters.Set) ([]models.Company, error) {
	where := sqlbuild.BuildWhereClause(set, companyRules)

	companies := []models.Company{}
	err := s.DB.WithContext(ctx).Raw(
		`SELECT `+companyColumns+` FROM companies `+where.SQL()+` ORDER BY name`,
		where.Values...,
	).Scan(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	if len(companies) == 0 && !set.Empty() {
		return nil, &apperrors.NotFoundForFilterError{Entity: "companies"}
	}
	return companies, nil
}

// Get returns the company with its jobs.
func (s *CompanyService) Get(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	db := s.DB.WithContext(ctx)

	var company models.CompanyDetail
	res := db.Raw(`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle).Scan(&company.Company)
	if res.Error != nil {
		return nil, fmt.Errorf("get company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "company", ID: handle}
	}

	var rows []jobRow
	err := db.Raw(
		`SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`,
		handle,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get company jobs: %w", err)
	}
	company.Jobs = toJobs(rows)
	return &company, nil
}

// Update applies a partial update. Only the fields present in fields change.
func (s *CompanyService) Update(ctx context.Context, handle string, fields sqlbuild.FieldMap) (*models.Company, error) {
	set, err := sqlbuild.BuildSetClause(fields, companyAliases)
	if err != nil {
		return nil, err
	}

	var company models.Company
	res := s.DB.WithContext(ctx).Raw(
		`UPDATE companies SET `+set.Clause+
			` WHERE handle = `+sqlbuild.Placeholder(set.Next())+
			` RETURNING `+companyColumns,
		append(set.Values, handle)...,
	).Scan(&company)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, &apperrors.DuplicateError{Entity: "company name", ID: fieldValue(fields, "name")}
		}
		return nil, fmt.Errorf("update company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "company", ID: handle}
	}
	return &company, nil
}

// Remove deletes the company and, through the foreign key, its jobs.
func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	res := s.DB.WithContext(ctx).Exec(`DELETE FROM companies WHERE handle = $1`, handle)
	if res.Error != nil {
		return fmt.Errorf("remove company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundForIdentifierError{Entity: "company", ID: handle}
	}
	return nil
}

func fieldValue(fields sqlbuild.FieldMap, name string) any {
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}
