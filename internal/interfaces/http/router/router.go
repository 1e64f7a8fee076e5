// Package router wires the HTTP route table.
package router

import (
	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/interfaces/http/handler"
	"github.com/dormlife/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the handlers registered on the router
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	School       *handler.SchoolHandler
	Temperature  *handler.TemperatureHandler
	Request      *handler.RequestHandler
	Announcement *handler.AnnouncementHandler
}

// Setup registers all routes on the engine. Authentication and role gates are
// applied per group; handlers only see already-vetted identities. A non-nil
// authLimiter is applied to the credential endpoints only.
func Setup(engine *gin.Engine, h Handlers, authn *middleware.Authenticator, authLimiter gin.HandlerFunc) {
	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)

	api := engine.Group("/api/v1")

	auth := api.Group("/auth")
	if authLimiter != nil {
		auth.Use(authLimiter)
	}
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.POST("/refresh-token", h.Auth.RefreshToken)
		auth.POST("/logout", authn.Authenticate(), h.Auth.Logout)
		auth.GET("/profile", authn.Authenticate(), h.Auth.Profile)
	}

	users := api.Group("/users", authn.Authenticate())
	{
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)
	}

	schools := api.Group("/schools")
	{
		schools.GET("", h.School.List)
		schools.GET("/:id", h.School.Get)
		schools.POST("", authn.Authenticate(), middleware.RequireRole(identity.RoleAdmin), h.School.Create)
		schools.PUT("/:id", authn.Authenticate(), middleware.RequireRole(identity.RoleAdmin), h.School.Update)
		schools.GET("/:id/stats", authn.Authenticate(), middleware.RequireRole(identity.RoleAdmin), h.School.Stats)
	}

	temperature := api.Group("/temperature", authn.Authenticate())
	{
		temperature.GET("/zones", h.Temperature.ListZones)
		temperature.GET("/current", h.Temperature.Current)
		temperature.GET("/stats", h.Temperature.Stats)
		temperature.POST("/vote", middleware.RequireVerification(), h.Temperature.Vote)
		temperature.PUT("/zones/:id",
			middleware.RequireRole(identity.RoleAdmin, identity.RoleStaff),
			h.Temperature.UpdateZone)
	}

	requests := api.Group("/requests", authn.Authenticate())
	{
		requests.POST("", h.Request.Create)
		requests.GET("", h.Request.List)
		requests.GET("/:id", h.Request.Get)
		requests.PUT("/:id/status",
			middleware.RequireRole(identity.RoleStaff, identity.RoleAdmin),
			h.Request.UpdateStatus)
		requests.POST("/:id/upvote", h.Request.Upvote)
		requests.POST("/:id/comments", h.Request.AddComment)
		requests.GET("/:id/comments", h.Request.ListComments)
	}

	announcements := api.Group("/announcements", authn.Authenticate())
	{
		announcements.GET("", h.Announcement.List)
		announcements.GET("/:id", h.Announcement.Get)
		announcements.POST("",
			middleware.RequireRole(identity.RoleStaff, identity.RoleAdmin),
			h.Announcement.Create)
		announcements.PUT("/:id",
			middleware.RequireRole(identity.RoleStaff, identity.RoleAdmin),
			h.Announcement.Update)
		announcements.DELETE("/:id",
			middleware.RequireRole(identity.RoleStaff, identity.RoleAdmin),
			h.Announcement.Deactivate)
	}
}
