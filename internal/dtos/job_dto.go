package dtos

import "github.com/justsurfingit/jobly/internal/sqlbuild"

type JobExtractionRequest struct {
	RawHTML string `json:"rawHtml" binding:"required"`
	URL     string `json:"url"`
}

// JobDraft is what the extraction model could read out of a posting. Every
// field is optional; an admin reviews it before creating the job.
type JobDraft struct {
	Title       *string  `json:"title"`
	CompanyName *string  `json:"companyName"`
	Salary      *int     `json:"salary"`
	Equity      *float64 `json:"equity"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
}

type JobCreationRequest struct {
	Title         string   `json:"title" binding:"required,min=1"`
	Salary        *int     `json:"salary" binding:"omitempty,min=0"`
	Equity        *float64 `json:"equity" binding:"omitempty,min=0,max=1"`
	CompanyHandle string   `json:"companyHandle" binding:"required,min=1,max=25"`
}

// JobUpdateRequest may not move a job to another company.
type JobUpdateRequest struct {
	Title  *string  `json:"title" binding:"omitempty,min=1"`
	Salary *int     `json:"salary" binding:"omitempty,min=0"`
	Equity *float64 `json:"equity" binding:"omitempty,min=0,max=1"`
}

// Fields lists the supplied fields in declaration order.
func (r JobUpdateRequest) Fields() sqlbuild.FieldMap {
	var m sqlbuild.FieldMap
	if r.Title != nil {
		m = m.Set("title", *r.Title)
	}
	if r.Salary != nil {
		m = m.Set("salary", *r.Salary)
	}
	if r.Equity != nil {
		m = m.Set("equity", *r.Equity)
	}
	return m
}
