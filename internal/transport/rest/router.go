package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/chat-management/internal/auth"
	"github.com/frahmantamala/chat-management/internal/chat"
	"github.com/frahmantamala/chat-management/internal/stats"
	"github.com/frahmantamala/chat-management/internal/transport/middleware"
	"github.com/frahmantamala/chat-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, authService *auth.Service, userHandler *user.Handler, chatHandler *chat.Handler, statsHandler *stats.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Get RBAC authorization from auth service
	rbac := authService.RBACAuthorization()

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware)

	// Mount API under /api/v1
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Chat message routes, gated per permission
				if chatHandler != nil {
					pr.Route("/messages", func(mr chi.Router) {
						mr.Group(func(vr chi.Router) {
							vr.Use(rbac.RequirePermission(auth.PermissionViewChat))
							vr.Get("/", chatHandler.ListMessages) // GET /messages
						})

						mr.Group(func(sr chi.Router) {
							sr.Use(rbac.RequirePermission(auth.PermissionSendChatMessage))
							sr.Post("/", chatHandler.CreateMessage) // POST /messages
						})

						mr.Group(func(dr chi.Router) {
							dr.Use(rbac.RequirePermission(auth.PermissionDeleteChatMessage))
							dr.Delete("/{id}", chatHandler.DeleteMessage) // DELETE /messages/:id
						})
					})
				}

				// Dashboard routes (moderators and up)
				if statsHandler != nil {
					pr.Group(func(dr chi.Router) {
						dr.Use(rbac.RequireDashboardAccess())
						dr.Get("/dashboard", statsHandler.GetDashboard)             // GET /dashboard
						dr.Get("/dashboard/statistics", statsHandler.GetStatistics) // GET /dashboard/statistics
					})
				}

				// Admin user routes (admins and up)
				if userHandler != nil {
					pr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireUserManagement())
						ar.Get("/admin/users", userHandler.ListUsers)     // GET /admin/users
						ar.Get("/admin/users/{id}", userHandler.GetUser) // GET /admin/users/:id
					})
				}
			})
		}
	})
}
