// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/handlers"
	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/storage"
	"github.com/danielhkuo/updateshub/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(cfg.ClientURL))

	disk := storage.Disk{Dir: cfg.UploadDir, BaseURL: cfg.PublicURL, MaxSize: cfg.MaxUploadSize}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, cfg)
	postHandler := handlers.NewPostHandler(st, cfg)
	ratingHandler := handlers.NewRatingHandler(st, cfg)
	categoryHandler := handlers.NewCategoryHandler(st)
	commentHandler := handlers.NewCommentHandler(st)
	contactHandler := handlers.NewContactHandler(st)
	statsHandler := handlers.NewStatsHandler(st, cfg)
	uploadHandler := handlers.NewUploadHandler(disk, cfg.MaxUploadSize)
	sitemapHandler := handlers.NewSitemapHandler(st, cfg.SiteURL)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/sitemap.xml", sitemapHandler.Sitemap)

	// Uploaded images
	r.Handle(storage.PublicPrefix+"*", http.StripPrefix(storage.PublicPrefix, http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, cliparse.RateLimitWindow))
		r.Use(middleware.Authenticate(st, cfg.JWTSecret))

		// Auth
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.With(middleware.RequireAuth).Get("/auth/profile", authHandler.Profile)

		// Public reads and guest writes
		r.Get("/posts", postHandler.ListPosts)
		r.Get("/posts/{slug}", postHandler.GetPostBySlug)
		r.Post("/posts/{id}/rate", ratingHandler.RatePost)
		r.Get("/categories", categoryHandler.List)
		r.Post("/comments", commentHandler.Create)
		r.Get("/comments/post/{postId}", commentHandler.ListByPost)
		r.Post("/contact", contactHandler.Submit)
		r.Post("/stats/visit", statsHandler.RecordVisit)

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/posts/admin", postHandler.ListAdminPosts)
			r.Get("/posts/admin/{id}", postHandler.GetPostByID)
			r.Post("/posts", postHandler.CreatePost)
			r.Put("/posts/{id}", postHandler.UpdatePost)
			r.Delete("/posts/{id}", postHandler.DeletePost)

			r.Post("/categories", categoryHandler.Create)
			r.Delete("/categories/{id}", categoryHandler.Delete)

			r.Get("/comments", commentHandler.ListAll)
			r.Put("/comments/{id}", commentHandler.UpdateStatus)
			r.Delete("/comments/{id}", commentHandler.Delete)

			r.Get("/contact", contactHandler.List)
			r.Get("/stats", statsHandler.AdminStats)

			r.Post("/upload", uploadHandler.Single)
			r.Post("/upload/multiple", uploadHandler.Multiple)
		})
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is running..."))
	})

	return r
}
