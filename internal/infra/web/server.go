package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sticker-hunt-backend/internal/domain/ports/adapter"
	"sticker-hunt-backend/internal/infra/metrics"
	redisinfra "sticker-hunt-backend/internal/infra/redis"
	"sticker-hunt-backend/internal/infra/security"
	"sticker-hunt-backend/internal/usecase"
)

const sessionCookieName = "session"

type Server struct {
	claimUC  *usecase.ClaimUseCase
	userUC   *usecase.UserUseCase
	statsUC  *usecase.StatsUseCase
	identity adapter.IdentityProvider
	signer   *security.StickerSigner
	limiter  *redisinfra.RateLimiter

	eventID      string
	cookieDomain string
	secureCookie bool

	log *zerolog.Logger
}

func NewServer(
	claimUC *usecase.ClaimUseCase,
	userUC *usecase.UserUseCase,
	statsUC *usecase.StatsUseCase,
	identity adapter.IdentityProvider,
	signer *security.StickerSigner,
	limiter *redisinfra.RateLimiter,
	eventID string,
	cookieDomain string,
	secureCookie bool,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		claimUC:      claimUC,
		userUC:       userUC,
		statsUC:      statsUC,
		identity:     identity,
		signer:       signer,
		limiter:      limiter,
		eventID:      eventID,
		cookieDomain: cookieDomain,
		secureCookie: secureCookie,
		log:          logger,
	}
}

// Handler builds the full route tree. The caller owns the http.Server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/claims", s.claimHandler())
		r.Get("/claims", s.listClaimsHandler())
		r.Get("/stats", s.statsHandler())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.registerHandler())
			r.Post("/login", s.loginHandler())
			r.Post("/logout", s.logoutHandler())
			r.Get("/me", s.meHandler())
		})
	})
	return r
}

// observe records per-route request metrics, keyed by the chi route
// pattern rather than the raw path so sticker codes never become labels.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(route, r.Method, ww.Status(), float64(time.Since(start).Milliseconds()))
	})
}

// sessionToken extracts the session credential. The claim endpoint sends
// it in X-Session-JWT; browser clients carry the cookie set at login.
func sessionToken(r *http.Request) string {
	if tok := r.Header.Get("X-Session-JWT"); tok != "" {
		return tok
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   s.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	s.setSessionCookie(w, "", -1)
}
