package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/filters"
)

type CompanyHandler struct {
	Companies CompanyStore
	Timeout   time.Duration
}

func NewCompanyHandler(companies CompanyStore, timeout time.Duration) *CompanyHandler {
	return &CompanyHandler{Companies: companies, Timeout: timeout}
}

// Create is POST /companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dtos.CompanyCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	company, err := h.Companies.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// List is GET /companies. Any recognized filter switches to the search contract.
func (h *CompanyHandler) List(c *gin.Context) {
	query := c.Request.URL.Query()
	if filters.Recognized(query, filters.CompanySpec) {
		h.Search(c)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	companies, err := h.Companies.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// Search is GET /companies/search.
func (h *CompanyHandler) Search(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	companies, err := h.Companies.Find(ctx, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// Get is GET /companies/:handle.
func (h *CompanyHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	company, err := h.Companies.Get(ctx, c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Update is PATCH /companies/:handle.
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dtos.CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	company, err := h.Companies.Update(ctx, c.Param("handle"), req.Fields())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Delete is DELETE /companies/:handle.
func (h *CompanyHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	handle := c.Param("handle")
	if err := h.Companies.Remove(ctx, handle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": handle})
}
