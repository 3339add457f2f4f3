package dtos

import "github.com/justsurfingit/jobly/internal/sqlbuild"

type TokenRequest struct {
	Username string `json:"username" binding:"required,min=1,max=25"`
	Password string `json:"password" binding:"required,min=1"`
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25"`
	Password  string `json:"password" binding:"required,min=5,max=72"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30"`
	Email     string `json:"email" binding:"required,email,max=60"`
}

// UserCreationRequest is the admin-only variant of RegisterRequest.
type UserCreationRequest struct {
	RegisterRequest
	IsAdmin bool `json:"isAdmin"`
}

type UserUpdateRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Password  *string `json:"password" binding:"omitempty,min=5,max=72"`
	Email     *string `json:"email" binding:"omitempty,email,max=60"`
}

// Fields lists the supplied fields in declaration order. The password is
// still plain text here; the user service hashes it.
func (r UserUpdateRequest) Fields() sqlbuild.FieldMap {
	var m sqlbuild.FieldMap
	if r.FirstName != nil {
		m = m.Set("firstName", *r.FirstName)
	}
	if r.LastName != nil {
		m = m.Set("lastName", *r.LastName)
	}
	if r.Password != nil {
		m = m.Set("password", *r.Password)
	}
	if r.Email != nil {
		m = m.Set("email", *r.Email)
	}
	return m
}
