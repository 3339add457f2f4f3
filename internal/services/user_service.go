package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlbuild"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userColumns = `username, first_name, last_name, email, is_admin`

var userAliases = sqlbuild.AliasTable{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

type UserService struct {
	DB         *gorm.DB
	WorkFactor int
}

func NewUserService(db *gorm.DB, workFactor int) *UserService {
	return &UserService{DB: db, WorkFactor: workFactor}
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.WorkFactor)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Authenticate checks the password of username. Unknown users and wrong
// passwords fail the same way.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	res := s.DB.WithContext(ctx).Raw(
		`SELECT `+userColumns+`, password FROM users WHERE username = $1`, username,
	).Scan(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("authenticate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.UnauthorizedError{Reason: "Invalid username/password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, &apperrors.UnauthorizedError{Reason: "Invalid username/password"}
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	user.Password = ""
	return &user, nil
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, req dtos.RegisterRequest, isAdmin bool) (*models.User, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.DB.WithContext(ctx).Raw(
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		req.Username, hashed, req.FirstName, req.LastName, req.Email, isAdmin,
	).Scan(&user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperrors.DuplicateError{Entity: "username", ID: req.Username}
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.WithContext(ctx).Raw(`SELECT ` + userColumns + ` FROM users ORDER BY username`).Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the IDs of the jobs they applied to.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	db := s.DB.WithContext(ctx)

	var user models.User
	res := db.Raw(`SELECT `+userColumns+` FROM users WHERE username = $1`, username).Scan(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("get user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}

	var applications []models.Application
	err := db.Raw(
		`SELECT username, job_id FROM applications WHERE username = $1 ORDER BY job_id`, username,
	).Scan(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("get user applications: %w", err)
	}
	user.Jobs = make([]uint, 0, len(applications))
	for _, a := range applications {
		user.Jobs = append(user.Jobs, a.JobID)
	}
	return &user, nil
}

// Update applies a partial update. A password in fields is hashed before it
// is stored.
func (s *UserService) Update(ctx context.Context, username string, fields sqlbuild.FieldMap) (*models.User, error) {
	fields = append(sqlbuild.FieldMap(nil), fields...)
	for i, f := range fields {
		if f.Name != "password" {
			continue
		}
		plain, _ := f.Value.(string)
		hashed, err := s.hash(plain)
		if err != nil {
			return nil, err
		}
		fields[i].Value = hashed
	}

	set, err := sqlbuild.BuildSetClause(fields, userAliases)
	if err != nil {
		return nil, err
	}

	var user models.User
	res := s.DB.WithContext(ctx).Raw(
		`UPDATE users SET `+set.Clause+
			` WHERE username = `+sqlbuild.Placeholder(set.Next())+
			` RETURNING `+userColumns,
		append(set.Values, username)...,
	).Scan(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}
	return &user, nil
}

func (s *UserService) Remove(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Exec(`DELETE FROM users WHERE username = $1`, username)
	if res.Error != nil {
		return fmt.Errorf("remove user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
	}
	return nil
}

// ApplyToJob records an application. Applying twice is a DuplicateError; an
// unknown user or job is a NotFoundForIdentifierError.
func (s *UserService) ApplyToJob(ctx context.Context, username string, jobID uint) error {
	err := s.DB.WithContext(ctx).Exec(
		`INSERT INTO applications (username, job_id) VALUES ($1, $2)`, username, jobID,
	).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return &apperrors.DuplicateError{Entity: "application", ID: fmt.Sprintf("%s/%d", username, jobID)}
	case isForeignKeyViolation(err):
		if violatedTable(err) == "users" {
			return &apperrors.NotFoundForIdentifierError{Entity: "user", ID: username}
		}
		return &apperrors.NotFoundForIdentifierError{Entity: "job", ID: jobID}
	default:
		return fmt.Errorf("apply to job: %w", err)
	}
}
