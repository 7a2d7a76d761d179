package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/protocol"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/room"
	"github.com/gorilla/websocket"
)

// DefaultSendBuffer is the number of frames queued per connection before drops
const DefaultSendBuffer = 64

// cleanupTimeout bounds the room cleanup after a socket goes away
const cleanupTimeout = 5 * time.Second

// Config holds the configuration for the websocket handler
type Config struct {
	Broadcaster   room.Broadcaster
	UUIDGenerator uuid.UUID

	// CampaignService is required when EnforceGM is set
	CampaignService campaign.Service

	// EnforceGM drops update-initiative frames from anyone but the campaign's GM
	EnforceGM bool

	// SendBuffer is the per-connection frame queue
	SendBuffer int

	// CheckOrigin overrides gorilla's same-origin check when set
	CheckOrigin func(r *http.Request) bool

	Logger *slog.Logger
}

// Handler upgrades requests to websockets and relays frames through the room broadcaster
type Handler struct {
	broadcaster     room.Broadcaster
	campaignService campaign.Service
	uuidGenerator   uuid.UUID
	enforceGM       bool
	sendBuffer      int
	upgrader        websocket.Upgrader
	logger          *slog.Logger
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.EnforceGM && cfg.CampaignService == nil {
		return nil, ErrNilCampaignService
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		broadcaster:     cfg.Broadcaster,
		campaignService: cfg.CampaignService,
		uuidGenerator:   cfg.UUIDGenerator,
		enforceGM:       cfg.EnforceGM,
		sendBuffer:      sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger: logger,
	}, nil
}

// ServeHTTP upgrades the request. The caller identifies itself with the
// user and name query parameters.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn := newConnection(
		h.uuidGenerator.NewUUID(),
		r.URL.Query().Get("user"),
		r.URL.Query().Get("name"),
		socket,
		h.sendBuffer,
		h.logger,
	)

	h.logger.Info("connection opened",
		"connection_id", conn.id,
		"user_id", conn.userID,
		"remote_addr", r.RemoteAddr)

	go conn.writePump()
	h.readLoop(r.Context(), conn)
}

// readLoop dispatches client frames until the socket fails, then leaves every room
func (h *Handler) readLoop(ctx context.Context, conn *connection) {
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer cancel()

		out, err := h.broadcaster.Disconnect(cleanupCtx, &room.DisconnectInput{Connection: conn})
		if err != nil {
			h.logger.Warn("disconnect cleanup failed", "connection_id", conn.id, "error", err)
		} else {
			h.logger.Info("connection closed",
				"connection_id", conn.id,
				"rooms_left", len(out.CampaignIDs))
		}
		conn.close()
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// read whole messages so a bad payload never looks like a socket failure
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("read failed", "connection_id", conn.id, "error", err)
			}
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.logger.Debug("malformed frame", "connection_id", conn.id, "error", err)
			h.sendError(conn, "", "malformed frame")
			continue
		}

		h.handleFrame(ctx, conn, &env)
	}
}
