package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/phono/internal/shared"
)

// scopedRouter applies an extra middleware stack to handlers registered
// through it before delegating to the underlying router.
//
// The [BasicRouter] middleware stack is global; scoping lets the session and
// rate-limit middleware cover only the routes that need them.
type scopedRouter struct {
	target      Router
	middlewares []Middleware
}

// Scope returns a [Router] view of target that wraps registrations with middleware.
func Scope(target Router, middleware ...Middleware) Router {
	return &scopedRouter{target: target, middlewares: middleware}
}

func (s *scopedRouter) Use(middleware ...Middleware) {
	s.middlewares = append(s.middlewares, middleware...)
}

func (s *scopedRouter) Handle(method, path string, handler http.Handler) {
	s.target.Handle(method, path, s.wrap(handler))
}

func (s *scopedRouter) Handler(handler Handler) {
	wrapped := s.wrap(handler)
	for _, route := range handler.Routes() {
		s.target.Handle(http.MethodGet, route, wrapped)
	}
}

func (s *scopedRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.target.ServeHTTP(w, r)
}

func (s *scopedRouter) wrap(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		wrapped = s.middlewares[i](wrapped)
	}
	return wrapped
}

// Routes assembles the full application router.
//
// Auth endpoints are public; the catalog and playlist endpoints require a
// session, and the media routes are additionally rate limited per client.
func Routes(cfg *shared.Config, logger *log.Logger, sessions *SessionStore, auth *AuthHandler, library *LibraryHandler, playlists *PlaylistHandler, gateway *Gateway) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Logging(logger))

	auth.Register(router)

	guard := RequireSession(sessions)
	library.Register(Scope(router, guard))
	playlists.Register(Scope(router, guard))

	limiter := RateLimit(cfg.Server.StreamRatePerSec, cfg.Server.StreamBurst)
	gateway.Register(Scope(router, guard, limiter))

	return router
}
