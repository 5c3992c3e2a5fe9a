package chat

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

// TokenVerifier checks a bearer credential and yields the identity it proves.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Handler upgrades authenticated HTTP requests to chat WebSocket sessions.
type Handler struct {
	relay    *Relay
	verifier TokenVerifier
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler returns a WebSocket handler bound to the relay. checkOrigin nil
// means same-origin only.
func NewHandler(relay *Relay, verifier TokenVerifier, checkOrigin func(*http.Request) bool, log zerolog.Logger) *Handler {
	return &Handler{
		relay:    relay,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		log: log.With().Str("component", "chat_handler").Logger(),
	}
}

// RegisterRoutes mounts the chat endpoint.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/chat", h.Serve)
}

// Serve authenticates the request and, only on success, upgrades it and runs
// the session. A bad credential is rejected before the upgrade with no
// presence side effect.
func (h *Handler) Serve(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, err := h.verifier.Verify(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := NewConn(claims.UserID)
	h.relay.HandleConnect(conn)
	h.log.Info().Str("user_id", conn.UserID).Msg("chat session opened")

	go h.writePump(ws, conn)
	h.readPump(ws, conn)
	return nil
}

// bearerToken extracts the credential from the Authorization header, falling
// back to the token query parameter for browser WebSocket clients that
// cannot set headers.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.QueryParam("token")
}

// readPump handles frames from the socket serially until it closes, then
// deregisters the connection.
func (h *Handler) readPump(ws *websocket.Conn, conn *Conn) {
	defer func() {
		h.relay.HandleDisconnect(conn)
		ws.Close()
		h.log.Info().Str("user_id", conn.UserID).Msg("chat session closed")
	}()

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("user_id", conn.UserID).Msg("read error")
			}
			return
		}
		if err := h.relay.HandleEvent(conn, frame); err != nil {
			h.log.Warn().Err(err).Str("user_id", conn.UserID).Msg("bad event")
			return
		}
	}
}

// writePump drains the connection's send queue to the socket and keeps the
// connection alive with pings. It exits when the queue is closed by Leave.
func (h *Handler) writePump(ws *websocket.Conn, conn *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case frame, ok := <-conn.Send:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
