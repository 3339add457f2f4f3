package handlers

import (
	"context"
	"net/url"
	"strings"

	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/filters"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlbuild"
)

// The fakes keep rows in memory and raise the same errors as the services.

type fakeCompanies struct {
	rows       []models.Company
	err        error
	lastFields sqlbuild.FieldMap
}

func (f *fakeCompanies) Create(_ context.Context, req dtos.CompanyCreationRequest) (*models.Company, error) {
	for _, c := range f.rows {
		if c.Handle == req.Handle {
			return nil, &apperrors.DuplicateError{Entity: "company", ID: req.Handle}
		}
	}
	c := models.Company{Handle: req.Handle, Name: req.Name, Description: req.Description, NumEmployees: req.NumEmployees, LogoURL: req.LogoURL}
	f.rows = append(f.rows, c)
	return &c, nil
}

func (f *fakeCompanies) FindAll(context.Context) ([]models.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Company{}, f.rows...), nil
}

func (f *fakeCompanies) Find(_ context.Context, query url.Values) ([]models.Company, error) {
	set, err := filters.Validate(query, filters.CompanySpec)
	if err != nil {
		return nil, err
	}
	out := []models.Company{}
	for _, c := range f.rows {
		if name, ok := set["name"].(string); ok && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 && !set.Empty() {
		return nil, &apperrors.NotFoundForFilterError{Entity: "companies"}
	}
	return out, nil
}

func (f *fakeCompanies) Get(_ context.Context, handle string) (*models.CompanyDetail, error) {
	c, err := f.find(handle)
	if err != nil {
		return nil, err
	}
	return &models.CompanyDetail{Company: *c, Jobs: []models.Job{}}, nil
}

func (f *fakeCompanies) find(handle string) (*models.Company, error) {
	for _, c := range f.rows {
		if c.Handle == handle {
			return &c, nil
		}
	}
	return nil, &apperrors.NotFoundForIdentifierError{Entity: "company", ID: handle}
}

func (f *fakeCompanies) Update(_ context.Context, handle string, fields sqlbuild.FieldMap) (*models.Company, error) {
	f.lastFields = fields
	if len(fields) == 0 {
		return nil, &apperrors.EmptyUpdateError{}
	}
	c, err := f.find(handle)
	if err != nil {
		return nil, err
	}
	for _, field := range fields {
		if field.Name == "name" {
			c.Name = field.Value.(string)
		}
	}
	return c, nil
}

func (f *fakeCompanies) Remove(_ context.Context, handle string) error {
	_, err := f.find(handle)
	return err
}

type fakeJobs struct {
	rows       []models.Job
	lastFields sqlbuild.FieldMap
}

func (f *fakeJobs) Create(_ context.Context, req dtos.JobCreationRequest) (*models.Job, error) {
	j := models.Job{ID: uint(len(f.rows) + 1), Title: req.Title, Salary: req.Salary, Equity: req.Equity, CompanyHandle: req.CompanyHandle}
	f.rows = append(f.rows, j)
	return &j, nil
}

func (f *fakeJobs) FindAll(context.Context) ([]models.Job, error) {
	return append([]models.Job{}, f.rows...), nil
}

func (f *fakeJobs) Find(_ context.Context, query url.Values) ([]models.Job, error) {
	set, err := filters.Validate(query, filters.JobSpec)
	if err != nil {
		return nil, err
	}
	out := []models.Job{}
	for _, j := range f.rows {
		if want, _ := set["hasEquity"].(bool); want && (j.Equity == nil || *j.Equity <= 0) {
			continue
		}
		out = append(out, j)
	}
	if len(out) == 0 && !set.Empty() {
		return nil, &apperrors.NotFoundForFilterError{Entity: "jobs"}
	}
	return out, nil
}

func (f *fakeJobs) Get(_ context.Context, id uint) (*models.Job, error) {
	for _, j := range f.rows {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, &apperrors.NotFoundForIdentifierError{Entity: "job", ID: id}
}

func (f *fakeJobs) Update(ctx context.Context, id uint, fields sqlbuild.FieldMap) (*models.Job, error) {
	f.lastFields = fields
	if len(fields) == 0 {
		return nil, &apperrors.EmptyUpdateError{}
	}
	return f.Get(ctx, id)
}

func (f *fakeJobs) Remove(ctx context.Context, id uint) error {
	_, err := f.Get(ctx, id)
	return err
}

type fakeUsers struct {
	rows      map[string]*models.User
	passwords map[string]string
	applied   map[string][]uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		rows:      map[string]*models.User{},
		passwords: map[string]string{},
		applied:   map[string][]uint{},
	}
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	u, ok := f.rows[username]
	if !ok || f.passwords[username] != password {
		return nil, &apperrors.UnauthorizedError{Reason: "Invalid username/password"}
	}
	return u, nil
}

func (f *fakeUsers) Register(_ context.Context, req dtos.RegisterRequest, isAdmin bool) (*models.User, error) {
	if _, ok := f.rows[req.Username]; ok {
		return nil, &apperrors.DuplicateError{Entity: "username", ID: req.Username}
	}
	u := &models.User{Username: req.Username, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, IsAdmin: isAdmin}
	f.rows[req.Username] = u
	f.passwords[req.Username] = req.Password
	return u, nil
}

func (f *fakeUsers) FindAll(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Get(_ context.Context, username string) (*models.User, error) {
	u, ok := f.rows[username]
	if !ok {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}
	out := *u
	out.Jobs = append([]uint{}, f.applied[username]...)
	return &out, nil
}

func (f *fakeUsers) Update(ctx context.Context, username string, fields sqlbuild.FieldMap) (*models.User, error) {
	if len(fields) == 0 {
		return nil, &apperrors.EmptyUpdateError{}
	}
	return f.Get(ctx, username)
}

func (f *fakeUsers) Remove(_ context.Context, username string) error {
	if _, ok := f.rows[username]; !ok {
		return &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}
	delete(f.rows, username)
	return nil
}

func (f *fakeUsers) ApplyToJob(_ context.Context, username string, jobID uint) error {
	if _, ok := f.rows[username]; !ok {
		return &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}
	for _, id := range f.applied[username] {
		if id == jobID {
			return &apperrors.DuplicateError{Entity: "application", ID: jobID}
		}
	}
	f.applied[username] = append(f.applied[username], jobID)
	return nil
}

type fakeExtractor struct {
	draft *dtos.JobDraft
}

func (f *fakeExtractor) ExtractJobDetails(context.Context, string) (*dtos.JobDraft, error) {
	return f.draft, nil
}
