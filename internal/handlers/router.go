package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobly/internal/config"
)

// Deps are the services the router serves. Extractor may be nil.
type Deps struct {
	Config    config.Config
	Companies CompanyStore
	Jobs      JobStore
	Users     UserStore
	Extractor JobExtractor
}

// NewRouter builds the gin engine with every route and middleware. Strict
// JSON decoding is a process-wide gin setting left to the caller.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))
	r.Use(RequestID(), Authenticate(deps.Config.SecretKey))

	timeout := deps.Config.QueryTimeout
	companyHandler := NewCompanyHandler(deps.Companies, timeout)
	jobHandler := NewJobHandler(deps.Jobs, deps.Extractor, timeout)
	userHandler := NewUserHandler(deps.Users, deps.Config.SecretKey, timeout)

	r.GET("/health", HealthCheck)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/token", userHandler.Token)
		authRoutes.POST("/register", userHandler.Register)
	}

	companies := r.Group("/companies")
	{
		companies.POST("", RequireAdmin(), companyHandler.Create)
		companies.GET("", companyHandler.List)
		companies.GET("/search", companyHandler.Search)
		companies.GET("/:handle", companyHandler.Get)
		companies.PATCH("/:handle", RequireAdmin(), companyHandler.Update)
		companies.DELETE("/:handle", RequireAdmin(), companyHandler.Delete)
	}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", RequireAdmin(), jobHandler.Create)
		jobs.POST("/extract", RequireAdmin(), jobHandler.Extract)
		jobs.GET("", jobHandler.List)
		jobs.GET("/search", jobHandler.Search)
		jobs.GET("/:id", jobHandler.Get)
		jobs.PATCH("/:id", RequireAdmin(), jobHandler.Update)
		jobs.DELETE("/:id", RequireAdmin(), jobHandler.Delete)
	}

	users := r.Group("/users", EnsureLoggedIn())
	{
		users.POST("", RequireAdmin(), userHandler.Create)
		users.GET("", RequireAdmin(), userHandler.List)
		users.GET("/:username", EnsureRightUser(), userHandler.Get)
		users.PATCH("/:username", EnsureRightUser(), userHandler.Update)
		users.DELETE("/:username", EnsureRightUser(), userHandler.Delete)
		users.POST("/:username/jobs/:id", EnsureRightUser(), userHandler.Apply)
	}

	return r
}
