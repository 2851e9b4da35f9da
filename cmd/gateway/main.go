package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	api "github.com/brightpath/brightpath-lms/internal/api/http"
	"github.com/brightpath/brightpath-lms/internal/assess"
	auth "github.com/brightpath/brightpath-lms/internal/auth/middleware"
	"github.com/brightpath/brightpath-lms/internal/config"
	"github.com/brightpath/brightpath-lms/internal/content"
	"github.com/brightpath/brightpath-lms/internal/db"
	"github.com/brightpath/brightpath-lms/internal/rbac"
	syncx "github.com/brightpath/brightpath-lms/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	seedAdmin(ctx, dbh, cfg)

	contentStore := content.NewSQLStore(dbh)
	provider := assess.NewSQLProvider(dbh)
	events := syncx.NewEventRepo(dbh)

	var snapshots assess.SnapshotStore
	switch cfg.SnapshotDriver {
	case "fs":
		fs, err := assess.NewFSSnapshots(cfg.SnapshotBasePath)
		if err != nil {
			log.Fatalf("snapshot store: %v", err)
		}
		snapshots = fs
	default:
		snapshots = assess.NewSQLSnapshots(dbh)
	}

	guard := assess.NewSoftLockGuard()
	mgr := assess.NewManager(provider, snapshots, guard)
	mgr.SetEvents(events)

	// an orphaned snapshot from a previous run resumes (and, if past its
	// deadline, finalizes) before the first request arrives
	if _, err := mgr.Resume(ctx); err != nil && !errors.Is(err, assess.ErrNoSession) {
		log.Printf("session resume: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT -> subject+role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// content
		pr.With(rbac.Require("lesson:view")).
			Get("/courses/{courseID}/outline", api.CourseOutlineHandler(contentStore))
		pr.With(rbac.Require("lesson:complete")).
			Post("/lessons/{lessonID}/complete", api.CompleteLessonHandler(contentStore))
		pr.With(rbac.Require("content:author")).
			Put("/sections", api.UpsertSectionHandler(contentStore))

		// authoring
		pr.With(rbac.Require("assessment:create")).
			Post("/assessments", api.UploadAssessmentHandler(provider))
		pr.With(rbac.Require("assessment:view")).
			Get("/assessments/{assessmentID}", api.GetAssessmentHandler(provider))

		// session flow
		pr.With(rbac.Require("session:take")).
			Post("/assessments/{assessmentID}/session", api.CreateSessionHandler(mgr, provider, contentStore))
		pr.With(rbac.Require("session:take")).
			Post("/session/start", api.StartSessionHandler(mgr))
		pr.With(rbac.Require("session:take")).
			Post("/session/answer", api.AnswerHandler(mgr))
		pr.With(rbac.Require("session:take")).
			Post("/session/advance", api.AdvanceHandler(mgr))
		pr.With(rbac.Require("session:take")).
			Get("/session", api.GetSessionHandler(mgr))
		pr.With(rbac.Require("session:take")).
			Post("/session/guard-events", api.GuardEventHandler(guard, events))

		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/assessments/{assessmentID}/attempts", api.AttemptsListHandler(provider, provider))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s, snapshots=%s)",
		cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.SnapshotDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// seedAdmin guarantees a usable admin login on a fresh database.
func seedAdmin(ctx context.Context, dbh *sql.DB, cfg config.Config) {
	_, err := dbh.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role)
		 VALUES ($1,$1,$2,'admin')
		 ON CONFLICT (username) DO NOTHING`,
		cfg.AdminUser, cfg.AdminPassHash)
	if err != nil {
		log.Printf("seed admin: %v", err)
	}
}
