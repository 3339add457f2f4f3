package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/filters"
)

// JobHandler serves /jobs. Extractor is nil when no LLM is configured.
type JobHandler struct {
	Jobs      JobStore
	Extractor JobExtractor
	Timeout   time.Duration
}

func NewJobHandler(jobs JobStore, extractor JobExtractor, timeout time.Duration) *JobHandler {
	return &JobHandler{Jobs: jobs, Extractor: extractor, Timeout: timeout}
}

// jobID parses the :id path parameter. An id that is not a positive integer
// cannot name a job.
func jobID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, &apperrors.NotFoundForIdentifierError{Entity: "job", ID: raw}
	}
	return uint(id), nil
}

// Create is POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	job, err := h.Jobs.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// List is GET /jobs. Any recognized filter switches to the search contract.
func (h *JobHandler) List(c *gin.Context) {
	if filters.Recognized(c.Request.URL.Query(), filters.JobSpec) {
		h.Search(c)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	jobs, err := h.Jobs.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Search is GET /jobs/search.
func (h *JobHandler) Search(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	jobs, err := h.Jobs.Find(ctx, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Get is GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	job, err := h.Jobs.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// Update is PATCH /jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	job, err := h.Jobs.Update(ctx, id, req.Fields())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// Delete is DELETE /jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	if err := h.Jobs.Remove(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// Extract is POST /jobs/extract. It returns a draft for an admin to review;
// nothing is stored.
func (h *JobHandler) Extract(c *gin.Context) {
	if h.Extractor == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			errorBody(http.StatusServiceUnavailable, "Job extraction is not configured"))
		return
	}
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.Extractor.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
