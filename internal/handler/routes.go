// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mangotour/mtour-go/internal/middleware"
)

// Routes assembles the API router. uploadsDir, when non-empty, is also
// served statically under /uploads/ for the local media backend.
func (h *Handler) Routes(uploadsDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(h.sessions.LoadAndSave)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.Get("/global", h.GetGlobalData)
		r.Get("/settings", h.GetSettings)
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/videos", h.ListVideos)
		r.Get("/posts", h.ListPosts)
		r.Get("/pages", h.ListPages)
		r.Get("/pages/{id}", h.GetPage)
		r.Get("/popup", h.GetPopup)
		r.Post("/posts/{id}/open", h.OpenPost)
		r.Post("/trips/quote", h.TripQuote)

		// Authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.LoginRateLimit(0.5, 5))
			r.Post("/auth/login", h.Login)
			r.Post("/auth/register", h.Register)
		})
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Logged-in board actions
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(h.sessions))
			r.Post("/posts", h.CreatePost)
			r.Post("/posts/{id}/comments", h.AddComment)
		})

		// Admin back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.sessions))

			r.Get("/status", h.Status)
			r.Post("/resync", h.Resync)

			r.Post("/products", h.SaveProduct)
			r.Put("/products/{id}", h.SaveProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Delete("/products/{id}/itinerary/{day}", h.DeleteItineraryDay)

			r.Post("/videos", h.SaveVideo)
			r.Put("/videos/{id}", h.SaveVideo)
			r.Delete("/videos/{id}", h.DeleteVideo)

			r.Delete("/posts/{id}", h.DeletePost)
			r.Put("/posts/{id}/reply", h.SetAdminReply)

			r.Put("/pages/{id}", h.UpdatePage)
			r.Put("/popup", h.UpdatePopup)
			r.Put("/settings/hero", h.UpdateHeroImages)
			r.Put("/settings/menu", h.UpdateMenuItems)
			r.Put("/settings/ai", h.SetAIPublic)

			r.Post("/uploads", h.Upload)

			r.Get("/backup/auth-url", h.BackupAuthURL)
			r.Get("/backup/callback", h.BackupCallback)
			r.Get("/backup/status", h.BackupStatus)
			r.Post("/backup/save", h.BackupSave)
			r.Post("/backup/restore", h.BackupRestore)
			r.Post("/backup/disconnect", h.BackupDisconnect)
		})
	})

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			fs.ServeHTTP(w, r)
		})
	}

	return r
}
