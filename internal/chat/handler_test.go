package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

func newTestServer(t *testing.T) (*httptest.Server, *Relay, *auth.Manager) {
	t.Helper()

	tokens := auth.NewManager("test-secret-at-least-16-bytes", time.Hour)
	relay := newTestRelay(&mockStore{})
	allowAll := func(*http.Request) bool { return true }
	h := NewHandler(relay, tokens, allowAll, zerolog.Nop())

	e := echo.New()
	h.RegisterRoutes(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, relay, tokens
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
}

func TestServeRejectsMissingToken(t *testing.T) {
	srv, relay, _ := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}
	if relay.Presence().Online("anyone") {
		t.Fatal("rejected handshake must leave no presence behind")
	}
}

func TestServeRejectsBadToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=garbage", nil)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}
}

func TestServeAcceptsQueryToken(t *testing.T) {
	srv, relay, tokens := newTestServer(t)

	userID := uuid.New().String()
	token, err := tokens.Issue(userID, "patient")
	if err != nil {
		t.Fatal(err)
	}

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer ws.Close()

	waitForConnections(t, relay, userID, 1)
}

func TestServeAcceptsAuthorizationHeader(t *testing.T) {
	srv, relay, tokens := newTestServer(t)

	userID := uuid.New().String()
	token, err := tokens.Issue(userID, "doctor")
	if err != nil {
		t.Fatal(err)
	}

	header := http.Header{"Authorization": {"Bearer " + token}}
	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer ws.Close()

	waitForConnections(t, relay, userID, 1)
}

func TestDisconnectRemovesPresence(t *testing.T) {
	srv, relay, tokens := newTestServer(t)

	userID := uuid.New().String()
	token, _ := tokens.Issue(userID, "patient")

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	waitForConnections(t, relay, userID, 1)

	ws.Close()
	waitForConnections(t, relay, userID, 0)
}

func TestEndToEndTypingBetweenTwoClients(t *testing.T) {
	srv, relay, tokens := newTestServer(t)

	senderID := uuid.New().String()
	receiverID := uuid.New().String()
	senderToken, _ := tokens.Issue(senderID, "patient")
	receiverToken, _ := tokens.Issue(receiverID, "doctor")

	senderWS, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+senderToken, nil)
	if err != nil {
		t.Fatalf("sender dial failed: %v", err)
	}
	defer senderWS.Close()
	receiverWS, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+receiverToken, nil)
	if err != nil {
		t.Fatalf("receiver dial failed: %v", err)
	}
	defer receiverWS.Close()

	waitForConnections(t, relay, senderID, 1)
	waitForConnections(t, relay, receiverID, 1)

	out, _ := json.Marshal(map[string]interface{}{
		"event": EventTyping,
		"data":  TypingPayload{ReceiverID: receiverID, IsTyping: true},
	})
	if err := senderWS.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatal(err)
	}

	receiverWS.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, in, err := receiverWS.ReadMessage()
	if err != nil {
		t.Fatalf("receiver read failed: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(in, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != EventUserTyping {
		t.Fatalf("expected %s, got %s", EventUserTyping, env.Event)
	}
	var p UserTypingPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.UserID != senderID || !p.IsTyping {
		t.Fatalf("unexpected payload %+v", p)
	}
}

// waitForConnections polls the presence router until the user has the wanted
// connection count, failing the test after a second.
func waitForConnections(t *testing.T, relay *Relay, userID string, want int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for {
		if relay.Presence().Connections(userID) == want {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("user %s never reached %d connections (have %d)",
				userID, want, relay.Presence().Connections(userID))
		case <-time.After(10 * time.Millisecond):
		}
	}
}
