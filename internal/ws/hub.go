// internal/ws/hub.go
package ws

import (
	"context"
	"sync"

	"flotaops-service/internal/pkg/jwt"
	"flotaops-service/internal/pkg/session"

	"go.uber.org/zap"
)

// Hub fans alert envelopes out to every connected dashboard. Clients that
// cannot keep up are dropped rather than blocking the broadcast.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Alert

	jwtVerifier    *jwt.Verifier
	sessionManager *session.Manager
	logger         *zap.Logger
}

func NewHub(jwtVerifier *jwt.Verifier, sessionManager *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan *Alert, 256),
		jwtVerifier:    jwtVerifier,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// AuthenticateClient validates the access token and the backing session.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.jwtVerifier.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	blacklisted, err := h.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenRevoked
	}

	if _, err := h.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, err
	}

	return &ClientAuth{
		IdentityID: claims.IdentityID,
		SessionID:  claims.ID,
		Role:       claims.Role,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case alert := <-h.broadcast:
			h.send(alert)
		}
	}
}

// Publish queues an alert for every connected client. Safe to call from any
// goroutine; drops the alert when the queue is full rather than blocking the
// caller.
func (h *Hub) Publish(alert *Alert) {
	select {
	case h.broadcast <- alert:
	default:
		h.logger.Warn("alert queue full, dropping alert", zap.String("tipo", string(alert.Tipo)))
	}
}

// Register hands a freshly upgraded connection to the hub loop.
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("dashboard connected",
		zap.Int64("identity_id", client.identityID),
		zap.Int("total", len(h.clients)),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()
		h.logger.Info("dashboard disconnected",
			zap.Int64("identity_id", client.identityID),
			zap.Int("total", len(h.clients)),
		)
	}
}

func (h *Hub) send(alert *Alert) {
	data, err := alert.ToJSON()
	if err != nil {
		h.logger.Error("failed to marshal alert", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.enqueue(data)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}
