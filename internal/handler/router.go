/*
Package handler provides the HTTP handlers and routing setup for the Support Chat Server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the widget API and the
transcript WebSocket.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"supportchat/internal/pkg/auth/jwt"
	"supportchat/internal/pkg/limiter"
	"supportchat/internal/pkg/logx"
	"supportchat/internal/pkg/resp"
)

const (
	// EmailRate throttles verification code issuance per IP. One mailbox
	// challenge every five seconds with a small burst covers typo retries
	// without letting one address farm outbound mail.
	EmailRate  = 0.2
	EmailBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
// It requires the AppDeps bundle for business logic and settings (like allowed origins).
func Router(deps *AppDeps) http.Handler {
	emailLimiter := limiter.NewIPRateLimiter(rate.Limit(EmailRate), EmailBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Support Chat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api/widget", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		rateLimitedEmailHandler := emailLimiter.Middleware(HandleSubmitEmail(deps))
		api.Post("/email", http.HandlerFunc(rateLimitedEmailHandler.ServeHTTP))
		api.Post("/code", HandleSubmitCode(deps))

		api.Post("/message", HandleSendMessage(deps))
		api.Get("/transcript", HandleGetTranscript(deps))
	})

	r.Get("/ws/widget", HandleTranscriptSocket(wsUpgrader, deps))

	// Exposed to the content dashboard only; deployments keep /internal off
	// the public ingress.
	r.Post("/internal/faq/reload", HandleReloadFAQ(deps))

	return r
}
