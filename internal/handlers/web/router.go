package web

import (
	"net/http"

	"github.com/BorisRostovskiy/usertable/internal/log"
	"github.com/BorisRostovskiy/usertable/internal/view"
	health "github.com/hellofresh/health-go/v5"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type handler struct {
	log   *logrus.Logger
	views *view.Registry
	api   UsersMutator
}

// New builds the user table web handler. hh and metrics may be nil.
func New(log *logrus.Logger, views *view.Registry, api UsersMutator, hh *health.Health, metrics http.Handler) http.Handler {
	return router(&handler{
		log:   log,
		views: views,
		api:   api,
	}, log, hh, metrics)
}

func router(h *handler, l *logrus.Logger, hh *health.Health, metrics http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(log.RequestLogger("user_table", l))
	r.Use(middleware.Recoverer)

	r.Get("/", h.page)
	r.Get("/state", h.state)
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Post("/edit", h.editUser)
		r.Post("/delete", h.deleteUser)
	})
	r.Post("/toasts/{tid}/dismiss", h.dismissToast)
	r.Post("/session/reset", h.resetSession)

	if hh != nil {
		r.Get("/health", hh.HandlerFunc)
	}
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}
