package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/assetvault/asset-management/internal"
	"github.com/assetvault/asset-management/internal/assignment"
	"github.com/assetvault/asset-management/internal/audit"
	"github.com/assetvault/asset-management/internal/auth"
	"github.com/assetvault/asset-management/internal/dashboard"
	"github.com/assetvault/asset-management/internal/directory"
	"github.com/assetvault/asset-management/internal/item"
	"github.com/assetvault/asset-management/internal/photo"
	"github.com/assetvault/asset-management/internal/servicelog"
	"github.com/assetvault/asset-management/internal/transport/middleware"
	"github.com/assetvault/asset-management/internal/transport/swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Item       *item.Handler
	Photo      *photo.Handler
	Directory  *directory.Handler
	Assignment *assignment.Handler
	Audit      *audit.Handler
	ServiceLog *servicelog.Handler
	Dashboard  *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and UI at root.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded photos are served as plain static files.
	uploadPrefix := strings.TrimRight(cfg.Storage.PublicURL, "/")
	fileServer := http.StripPrefix(uploadPrefix+"/", http.FileServer(http.Dir(filepath.Clean(cfg.Storage.UploadDir))))
	router.Get(uploadPrefix+"/*", fileServer.ServeHTTP)

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", h.Auth.Register)
		ar.Post("/login", h.Auth.Login)

		ar.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Get("/me", h.Auth.Me)
		})
	})

	// Everything below requires a valid token.
	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)

		pr.Route("/items", func(ir chi.Router) {
			ir.Get("/", h.Item.ListItems)
			ir.Post("/", h.Item.CreateItem)
			ir.Get("/search", h.Item.SearchItems)
			ir.Get("/by-serial/{serial}", h.Item.GetItemBySerial)
			ir.Get("/{id}", h.Item.GetItem)
			ir.Put("/{id}", h.Item.UpdateItem)
			ir.Delete("/{id}", h.Item.DeleteItem)

			ir.Get("/{id}/photos", h.Photo.ListForItem)
			ir.Post("/{id}/photos", h.Photo.AddPhotos)
			ir.Delete("/{id}/photos/{photoID}", h.Photo.DeletePhoto)
			// Older clients upload a single cover photo here.
			ir.Post("/{id}/photo", h.Photo.AddPhotos)

			ir.Get("/{id}/services", h.ServiceLog.ListForItem)
			ir.Post("/{id}/services", h.ServiceLog.Create)
			ir.Get("/{id}/service-status", h.ServiceLog.StatusForItem)
		})

		pr.Route("/people", func(per chi.Router) {
			per.Get("/", h.Directory.ListPeople)
			per.Get("/{id}", h.Directory.GetPerson)
			per.Get("/{id}/history", h.Directory.PersonHistory)

			// Directory mutations are admin-only.
			per.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)
				ar.Post("/", h.Directory.CreatePerson)
				ar.Put("/{id}", h.Directory.UpdatePerson)
				ar.Delete("/{id}", h.Directory.DeletePerson)
			})
		})

		pr.Route("/departments", func(dr chi.Router) {
			dr.Get("/", h.Directory.ListDepartments)

			dr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)
				ar.Post("/", h.Directory.CreateDepartment)
				ar.Put("/{id}", h.Directory.UpdateDepartment)
				ar.Delete("/{id}", h.Directory.DeleteDepartment)
			})
		})

		pr.Route("/assignments", func(asr chi.Router) {
			asr.Post("/", h.Assignment.Assign)
			asr.Post("/return", h.Assignment.Return)
			asr.Post("/transfer", h.Assignment.Transfer)
			asr.Get("/active/{itemID}", h.Assignment.ActiveForItem)
		})

		pr.Get("/services/overview", h.ServiceLog.Overview)
		pr.Get("/entries", h.Audit.ListEntries)
		pr.Get("/dashboard/summary", h.Dashboard.Summary)
	})
}
