// Package server wires the application together: it is the composition
// root where the store client, services, and handlers are constructed and
// bound to routes. Nothing below this package holds global state — the
// store handle is built here once and injected downward.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/salon-booking/internal/auth"
	"github.com/sakif/salon-booking/internal/config"
	"github.com/sakif/salon-booking/internal/handler"
	"github.com/sakif/salon-booking/internal/middleware"
	"github.com/sakif/salon-booking/internal/repository/mongodb"
	"github.com/sakif/salon-booking/internal/service"
)

// Server owns the router and the store client. The client is connected in
// New and disconnected during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *mongodb.DB
}

// New connects to the document store, assembles the dependency chain
// (store → services → handlers) and registers all routes.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes registers middleware, builds the services and handlers, and
// maps every route to exactly one handler method.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.cfg.HTTP.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	render, err := handler.NewRenderer(s.cfg.HTTP.TemplateDir, s.logger)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessionService(s.cfg.Session.Secret, s.cfg.Session.TTLDuration())
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(s.cfg.Session.BcryptCost)

	var google *auth.GoogleProvider
	if s.cfg.Google.ClientID != "" && s.cfg.Google.ClientSecret != "" {
		google = auth.NewGoogleProvider(
			s.cfg.Google.ClientID,
			s.cfg.Google.ClientSecret,
			s.cfg.Google.CallbackURL,
		)
	} else {
		s.logger.Warn("Google OAuth credentials not set — /google_login routes disabled")
	}

	authSvc := service.NewAuthService(s.db.Users(), hasher, sessions, s.logger)
	apptSvc := service.NewAppointmentService(s.db.Appointments(), s.logger)

	pages := handler.NewPageHandler(render, s.logger)
	authHandler := handler.NewAuthHandler(authSvc, sessions, google, render, s.logger)
	apptHandler := handler.NewAppointmentHandler(apptSvc, render, s.logger)

	// Public service pages.
	s.router.Get("/index2", pages.HandleHaircut)
	s.router.Get("/index3", pages.HandleHaircolor)
	s.router.Get("/index4", pages.HandleBeardLineup)
	s.router.Get("/short", pages.HandleShortHaircut)

	// Booking CRUD is deliberately open: no login required.
	s.router.Get("/book_appointment", apptHandler.HandleBookForm)
	s.router.Post("/book_appointment", apptHandler.HandleBookSubmit)
	s.router.Get("/appointments", apptHandler.HandleList)
	s.router.Get("/edit_appointment/{id}", apptHandler.HandleEditForm)
	s.router.Post("/edit_appointment/{id}", apptHandler.HandleEditSubmit)
	s.router.Post("/delete_appointment/{id}", apptHandler.HandleDelete)

	// Account flows.
	s.router.Get("/signup", authHandler.HandleSignupForm)
	s.router.Post("/signup", authHandler.HandleSignupSubmit)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLoginSubmit)

	if google != nil {
		s.router.Get("/google_login", authHandler.HandleGoogleLogin)
		s.router.Get("/google_login/authorized", authHandler.HandleGoogleCallback)
	}

	// Protected pages: home and logout require an authenticated session;
	// anonymous access redirects to /login.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(sessions, s.db.Users()))
		r.Get("/", pages.HandleHome)
		r.Get("/logout", authHandler.HandleLogout)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s budget) and disconnects from the store.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.HTTP.Port),
			slog.String("store", s.cfg.Mongo.URI),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		if err := s.db.Close(ctx); err != nil {
			return fmt.Errorf("closing store connection: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
