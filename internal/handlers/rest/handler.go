package rest

import (
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/KirkDiggler/midnight/internal/services/roll"
	"github.com/KirkDiggler/midnight/internal/services/room"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
)

// Config holds the configuration for the REST handler
type Config struct {
	CampaignService   campaign.Service
	InitiativeService initiative.Service
	RollService       roll.Service
	Broadcaster       room.Broadcaster

	// WebSocket is mounted at /ws when set
	WebSocket http.Handler

	Logger *slog.Logger
}

// Handler serves the campaign, character and roll endpoints
type Handler struct {
	campaignService   campaign.Service
	initiativeService initiative.Service
	rollService       roll.Service
	broadcaster       room.Broadcaster
	webSocket         http.Handler
	logger            *slog.Logger
}

// New creates a new REST handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CampaignService == nil {
		return nil, ErrNilCampaignService
	}
	if cfg.InitiativeService == nil {
		return nil, ErrNilInitiativeService
	}
	if cfg.RollService == nil {
		return nil, ErrNilRollService
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		campaignService:   cfg.CampaignService,
		initiativeService: cfg.InitiativeService,
		rollService:       cfg.RollService,
		broadcaster:       cfg.Broadcaster,
		webSocket:         cfg.WebSocket,
		logger:            logger,
	}, nil
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(AccessLog(h.logger))
	r.Use(chimid.Recoverer)

	r.Get("/healthz", h.healthz)

	if h.webSocket != nil {
		r.Handle("/ws", h.webSocket)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/campaigns/{campaignID}", func(r chi.Router) {
			r.Get("/", h.getCampaign)
			r.Put("/", h.putCampaign)
			r.Delete("/", h.deleteCampaign)
			r.Get("/characters", h.listCharacters)
			r.Get("/room", h.getRoom)
		})

		r.Get("/gms/{gmID}/campaigns", h.listCampaignsByGM)

		r.Route("/characters/{characterID}", func(r chi.Router) {
			r.Get("/", h.getCharacter)
			r.Put("/", h.putCharacter)
			r.Delete("/", h.deleteCharacter)
			r.Get("/combatant", h.getCombatant)
		})

		r.Post("/rolls", h.postRoll)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
