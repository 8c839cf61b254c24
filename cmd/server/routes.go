package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"team-management.backend/internal/interfaces/http/handlers"
	"team-management.backend/internal/interfaces/http/middleware"
	"team-management.backend/pkg/metrics"
)

const (
	serviceName    = "team-management-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	teamMemberHandler *handlers.TeamMemberHandler
	metrics           *metrics.Metrics
}

func newRouter(allowedOrigins []string, d routeDeps) *gin.Engine {
	r := gin.New()
	// trailing-slash paths are registered explicitly; a redirect would skip CORS
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(d.metrics))

	applyCORSMiddleware(r, allowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, d.metrics)
	registerTeamMemberRoutes(r, d)
	return r
}

func registerTeamMemberRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		members := api.Group("/teammembers")
		{
			withSlash(members.GET, "", d.teamMemberHandler.ListTeamMembers)
			withSlash(members.POST, "", middleware.IdempotencyMiddleware(), d.teamMemberHandler.CreateTeamMember)
			withSlash(members.GET, "/schema", d.teamMemberHandler.GetSchema)
			withSlash(members.GET, "/:id", d.teamMemberHandler.GetTeamMember)
			withSlash(members.PUT, "/:id", d.teamMemberHandler.UpdateTeamMember)
			withSlash(members.PATCH, "/:id", d.teamMemberHandler.PatchTeamMember)
			withSlash(members.DELETE, "/:id", d.teamMemberHandler.DeleteTeamMember)
		}
	}
}

// withSlash registers path both with and without a trailing slash
func withSlash(register func(string, ...gin.HandlerFunc) gin.IRoutes, path string, handlers ...gin.HandlerFunc) {
	register(path, handlers...)
	register(path+"/", handlers...)
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, m *metrics.Metrics) {
	if m == nil {
		return
	}
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
