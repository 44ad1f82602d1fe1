package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/internal/middlewares"
	"github.com/onurcolak/sms-relay/internal/session"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

type entitlementSource interface {
	EntitledTelephones(ctx context.Context, accountID int64) ([]domain.Telephone, error)
}

// SessionHandler streams live bus events to a connected account.
type SessionHandler struct {
	bus            *bus.Bus
	entitlements   entitlementSource
	buffer         int
	allowedOrigins []string
}

// NewSessionHandler accepts browser origins from allowedOrigins ("*" allows
// any). Clients that send no Origin header are not browsers and are accepted.
func NewSessionHandler(b *bus.Bus, entitlements entitlementSource, buffer int, allowedOrigins []string) *SessionHandler {
	return &SessionHandler{
		bus:            b,
		entitlements:   entitlements,
		buffer:         buffer,
		allowedOrigins: allowedOrigins,
	}
}

// Live godoc
// @Summary Live updates
// @Description Websocket stream of JSON events for message:<telephone>, share:<account> and validation:<account>. The subscribed telephones follow the sharing graph while connected. Browsers pass the session token as the token query parameter.
// @Tags session
// @Security SessionToken
// @Param token query string false "Session token"
// @Success 101
// @Failure 400 "Not a websocket upgrade"
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 "Origin not allowed"
// @Router /api/v1/session/live [get]
func (h *SessionHandler) Live(c echo.Context) error {
	accountID := middlewares.AccountID(c)

	server := websocket.Server{
		Handshake: h.checkOrigin,
		Handler: func(conn *websocket.Conn) {
			h.stream(conn, accountID)
		},
	}
	server.ServeHTTP(c.Response(), c.Request())

	return nil
}

func (h *SessionHandler) checkOrigin(config *websocket.Config, req *http.Request) error {
	origin, err := websocket.Origin(config, req)
	if err != nil {
		return err
	}
	config.Origin = origin
	if origin == nil {
		return nil
	}

	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin.Scheme+"://"+origin.Host) {
			return nil
		}
	}

	return fmt.Errorf("origin %s not allowed", origin)
}

// stream owns the session for the lifetime of one upgraded connection, so a
// failed handshake never subscribes anything.
func (h *SessionHandler) stream(conn *websocket.Conn, accountID int64) {
	defer func() {
		_ = conn.Close()
	}()

	ctx, cancel := context.WithCancel(conn.Request().Context())
	defer cancel()

	s := session.New(accountID, h.bus, h.entitlements, h.buffer)
	defer s.Close()

	if err := s.Start(ctx); err != nil {
		logger.Errorf("Failed to start live session for account %d: %v", accountID, err)
		return
	}

	go s.Run(ctx)

	// Client frames are ignored; a read error means the client went away.
	go func() {
		defer cancel()
		for {
			var frame string
			if err := websocket.Message.Receive(conn, &frame); err != nil {
				return
			}
		}
	}()

	encoder := json.NewEncoder(conn)

	for {
		select {
		case event := <-s.Events():
			if err := encoder.Encode(event); err != nil {
				logger.Debugf("Live session write failed: %v", err)
				return
			}
		case <-ctx.Done():
			return
		case <-s.Done():
			return
		}
	}
}
