package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	LogOutput      io.Writer // defaults to stdout
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authHandler AuthHandler, darHandler DARHandler, holidayHandler HolidayHandler) *chi.Mux {
	r := chi.NewRouter()

	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})

			// Bearer token is optional here; when present it is revoked too.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequireCompany)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", darHandler.ListReports)
				r.Get("/{id}", darHandler.GetReport)
				r.With(middleware.RequirePermission(user.PermissionReportEditOwn)).Post("/{id}/submit", darHandler.SubmitReport)
				r.With(middleware.RequireManager).Post("/{id}/review", darHandler.ReviewReport)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportEditOwn))
				r.Post("/", darHandler.CreateTask)
				r.Put("/{id}", darHandler.UpdateTask)
				r.Delete("/{id}", darHandler.DeleteTask)
			})

			r.With(middleware.RequirePermission(user.PermissionReportEditOwn)).Put("/days/{date}", darHandler.SaveDay)

			r.Route("/timeline", func(r chi.Router) {
				r.Get("/day", darHandler.GetDayTimeline)
				r.Get("/range", darHandler.GetRangeTimeline)
				r.With(middleware.RequirePermission(user.PermissionReportExport)).Get("/export", darHandler.ExportTimeline)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Get("/{id}", holidayHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", holidayHandler.Create)
					r.Put("/{id}", holidayHandler.Update)
					r.Delete("/{id}", holidayHandler.Delete)
				})
			})
		})
	})
	return r
}
