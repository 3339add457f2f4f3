package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobly/internal/auth"
	"github.com/justsurfingit/jobly/internal/dtos"
)

// UserHandler serves /users and /auth.
type UserHandler struct {
	Users   UserStore
	Secret  string
	Timeout time.Duration
}

func NewUserHandler(users UserStore, secret string, timeout time.Duration) *UserHandler {
	return &UserHandler{Users: users, Secret: secret, Timeout: timeout}
}

// Token is POST /auth/token.
func (h *UserHandler) Token(c *gin.Context) {
	var req dtos.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := auth.CreateToken(h.Secret, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Register is POST /auth/register. New users are never admins.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	user, err := h.Users.Register(ctx, req, false)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := auth.CreateToken(h.Secret, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Create is POST /users, the admin way to add a user.
func (h *UserHandler) Create(c *gin.Context) {
	var req dtos.UserCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	user, err := h.Users.Register(ctx, req.RegisterRequest, req.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := auth.CreateToken(h.Secret, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// List is GET /users.
func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	users, err := h.Users.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get is GET /users/:username.
func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	user, err := h.Users.Get(ctx, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Update is PATCH /users/:username.
func (h *UserHandler) Update(c *gin.Context) {
	var req dtos.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	user, err := h.Users.Update(ctx, c.Param("username"), req.Fields())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete is DELETE /users/:username.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	username := c.Param("username")
	if err := h.Users.Remove(ctx, username); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": username})
}

// Apply is POST /users/:username/jobs/:id.
func (h *UserHandler) Apply(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	if err := h.Users.ApplyToJob(ctx, c.Param("username"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"applied": id})
}
