package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
)

var userRowColumns = []string{"username", "first_name", "last_name", "email", "is_admin"}

func TestUserAuthenticate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(append(userRowColumns, "password")).
			AddRow("u1", "U1F", "U1L", "u1@email.com", false, string(hashed))
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).WithArgs("u1").WillReturnRows(rows())
	user, err := svc.Authenticate(context.Background(), "u1", "password1")
	require.NoError(t, err)
	assert.Equal(t, &models.User{Username: "u1", FirstName: "U1F", LastName: "U1L", Email: "u1@email.com"}, user)

	mock.ExpectQuery(`FROM users`).WithArgs("u1").WillReturnRows(rows())
	_, err = svc.Authenticate(context.Background(), "u1", "wrong")
	var unauth *apperrors.UnauthorizedError
	require.ErrorAs(t, err, &unauth)

	mock.ExpectQuery(`FROM users`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(userRowColumns))
	_, err = svc.Authenticate(context.Background(), "nope", "password1")
	assert.Equal(t, 401, apperrors.StatusCode(err))
}

func TestUserRegister(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password, first_name, last_name, email, is_admin)`)).
		WithArgs("new", sqlmock.AnyArg(), "Test", "Tester", "test@test.com", true).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("new", "Test", "Tester", "test@test.com", true))

	user, err := svc.Register(context.Background(), dtos.RegisterRequest{
		Username:  "new",
		Password:  "password",
		FirstName: "Test",
		LastName:  "Tester",
		Email:     "test@test.com",
	}, true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Empty(t, user.Password)
}

func TestUserRegisterDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Register(context.Background(), dtos.RegisterRequest{Username: "u1", Password: "password"}, false)
	var dup *apperrors.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Duplicate username: u1", err.Error())
}

func TestUserGet(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("u1", "U1F", "U1L", "u1@email.com", false))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, job_id FROM applications WHERE username = $1 ORDER BY job_id`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"username", "job_id"}).AddRow("u1", 1).AddRow("u1", 3))

	user, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, user.Jobs)
}

func TestUserGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectQuery(`FROM users`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := svc.Get(context.Background(), "nope")
	assert.Equal(t, "No user: nope", err.Error())
}

func TestUserUpdateHashesPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET "first_name"=$1, "password"=$2 WHERE username = $3 RETURNING username`)).
		WithArgs("New", hashOf("new-password"), "u1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("u1", "New", "U1L", "u1@email.com", false))

	fields := dtos.UserUpdateRequest{FirstName: strPtr("New"), Password: strPtr("new-password")}.Fields()
	user, err := svc.Update(context.Background(), "u1", fields)
	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
	// The caller's field map still holds the plain value.
	assert.Equal(t, "new-password", fields[1].Value)
}

func TestUserRemove(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE username = $1`)).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, apperrors.IsNotFound(svc.Remove(context.Background(), "nope")))
}

func TestUserApplyToJob(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, bcrypt.MinCost)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO applications (username, job_id) VALUES ($1, $2)`)).
		WithArgs("u1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.ApplyToJob(ctx, "u1", 1))

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs("u1", 1).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	var dup *apperrors.DuplicateError
	require.ErrorAs(t, svc.ApplyToJob(ctx, "u1", 1), &dup)

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs("u1", 0).
		WillReturnError(&pgconn.PgError{Code: "23503", Detail: `Key (job_id)=(0) is not present in table "jobs".`})
	var notFound *apperrors.NotFoundForIdentifierError
	require.ErrorAs(t, svc.ApplyToJob(ctx, "u1", 0), &notFound)
	assert.Equal(t, "job", notFound.Entity)

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs("nope", 1).
		WillReturnError(&pgconn.PgError{Code: "23503", Detail: `Key (username)=(nope) is not present in table "users".`})
	require.ErrorAs(t, svc.ApplyToJob(ctx, "nope", 1), &notFound)
	assert.Equal(t, "No user: nope", notFound.Error())
}

// hashOf matches a bcrypt hash of plain.
type hashOf string

func (h hashOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && bcrypt.CompareHashAndPassword([]byte(s), []byte(h)) == nil
}
