package dtos

import "github.com/justsurfingit/jobly/internal/sqlbuild"

type CompanyCreationRequest struct {
	Handle       string  `json:"handle" binding:"required,min=1,max=25"`
	Name         string  `json:"name" binding:"required,min=1"`
	Description  string  `json:"description" binding:"required"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// CompanyUpdateRequest holds the mutable company fields. The handle is fixed.
type CompanyUpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// Fields lists the supplied fields in declaration order, keyed by their JSON names.
func (r CompanyUpdateRequest) Fields() sqlbuild.FieldMap {
	var m sqlbuild.FieldMap
	if r.Name != nil {
		m = m.Set("name", *r.Name)
	}
	if r.Description != nil {
		m = m.Set("description", *r.Description)
	}
	if r.NumEmployees != nil {
		m = m.Set("numEmployees", *r.NumEmployees)
	}
	if r.LogoURL != nil {
		m = m.Set("logoUrl", *r.LogoURL)
	}
	return m
}
