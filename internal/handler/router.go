package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gurukul-labs/tutor-backend/internal/config"
	"github.com/gurukul-labs/tutor-backend/internal/handler/health"
	"github.com/gurukul-labs/tutor-backend/internal/handler/stream"
	tutorHandler "github.com/gurukul-labs/tutor-backend/internal/handler/tutor"
	middlewarePkg "github.com/gurukul-labs/tutor-backend/internal/middleware"
	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
	aiservice "github.com/gurukul-labs/tutor-backend/internal/service/ai"
	chatservice "github.com/gurukul-labs/tutor-backend/internal/service/chat"
	tutorservice "github.com/gurukul-labs/tutor-backend/internal/service/tutor"
	"github.com/gurukul-labs/tutor-backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(tutorSvc *tutorservice.Service, chatSvc *chatservice.Service, aiSvc *aiservice.Service, tiers tier.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.Server.AllowedOrigins))

	chatHandler := tutorHandler.New(tutorSvc)
	healthHandler := health.New(tutorSvc)

	// Streaming is only mounted when the provider is configured; the JSON
	// endpoint degrades gracefully on its own.
	var streamHandler *stream.Handler
	if aiSvc != nil {
		streamHandler = stream.New(aiSvc, chatSvc, tutorSvc, tiers, cfg.Session.TTL)
	}

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		healthHandler.RegisterRoutes(api)

		api.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
			if streamHandler == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "streaming unavailable")
				return
			}

			message := r.URL.Query().Get("message")
			if message == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}
			sessionID := r.URL.Query().Get("session_id")
			level := r.URL.Query().Get("level")

			if err := streamHandler.HandleStream(r.Context(), w, sessionID, message, level); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
