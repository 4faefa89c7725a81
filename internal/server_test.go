package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/plazahq/plaza/internal/db"
	"github.com/plazahq/plaza/internal/hub"
	"github.com/plazahq/plaza/internal/logging"
	"github.com/plazahq/plaza/internal/services/plaza"
	"github.com/plazahq/plaza/internal/wire"
)

type testServer struct {
	ts     *httptest.Server
	floors *hub.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "plaza-test.sqlite"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	logger := logging.NewNop()
	floors := hub.NewManager(logger)
	ts := httptest.NewServer(NewHandler(database, floors, logger))
	t.Cleanup(func() {
		ts.CloseClientConnections()
		ts.Close()
		database.Close()
	})
	return &testServer{ts: ts, floors: floors}
}

func (s *testServer) registerAndLogin(t *testing.T, username string) *plaza.LoginResponse {
	t.Helper()
	anon := plaza.NewClient(s.ts.URL, "")
	if _, err := plaza.Register(anon, username, "password1"); err != nil {
		t.Fatalf("registering %s: %v", username, err)
	}
	login, err := plaza.Login(anon, username, "password1")
	if err != nil {
		t.Fatalf("logging in %s: %v", username, err)
	}
	return login
}

func (s *testServer) dialFloor(t *testing.T, token, floorID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/floor/" + floorID
	cfg, err := websocket.NewConfig(wsURL, s.ts.URL)
	if err != nil {
		t.Fatalf("ws config: %v", err)
	}
	cfg.Header.Set("Authorization", "Bearer "+token)
	ws, err := websocket.DialConfig(cfg)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// recv reads the next envelope and requires its type tag.
func recv(t *testing.T, ws *websocket.Conn, wantType string) wire.RawEnvelope {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env wire.RawEnvelope
	if err := websocket.JSON.Receive(ws, &env); err != nil {
		t.Fatalf("receiving %s: %v", wantType, err)
	}
	if env.Type != wantType {
		t.Fatalf("expected %s, got %s", wantType, env.Type)
	}
	return env
}

func decode[T any](t *testing.T, env wire.RawEnvelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Payload, &v); err != nil {
		t.Fatalf("decoding %s payload: %v", env.Type, err)
	}
	return v
}

func TestHealthzOpenStatusGuarded(t *testing.T) {
	s := newTestServer(t)

	res, err := http.Get(s.ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", res.StatusCode)
	}

	res, err = http.Get(s.ts.URL + "/status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestRegisterLoginStatus(t *testing.T) {
	s := newTestServer(t)
	login := s.registerAndLogin(t, "alice")

	if login.Token == "" || login.UserID == "" {
		t.Fatalf("incomplete login response: %+v", login)
	}

	// wrong password never issues a token
	anon := plaza.NewClient(s.ts.URL, "")
	if _, err := plaza.Login(anon, "alice", "wrong-password"); err == nil {
		t.Fatal("expected login failure")
	}

	authed := plaza.NewClient(s.ts.URL, login.Token)
	status, err := plaza.Status(authed)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Username != "alice" {
		t.Fatalf("status username = %q", status.Username)
	}
	if status.Online != 0 {
		t.Fatalf("expected empty floors, online = %d", status.Online)
	}
}

func TestRegisterRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	anon := plaza.NewClient(s.ts.URL, "")

	if _, err := plaza.Register(anon, "bad name!", "password1"); err == nil {
		t.Fatal("expected invalid username rejection")
	}
	if _, err := plaza.Register(anon, "dave", "short"); err == nil {
		t.Fatal("expected short password rejection")
	}
	if _, err := plaza.Register(anon, "dave", "password1"); err != nil {
		t.Fatalf("valid registration failed: %v", err)
	}
	if _, err := plaza.Register(anon, "dave", "password2"); err == nil {
		t.Fatal("expected duplicate username rejection")
	}
}

func TestFloorJoinMoveLeave(t *testing.T) {
	s := newTestServer(t)
	alice := s.registerAndLogin(t, "alice")
	bob := s.registerAndLogin(t, "bob")

	wsA := s.dialFloor(t, alice.Token, "lobby")
	snap := decode[wire.PlayersState](t, recv(t, wsA, wire.TypePlayersState))
	if len(snap.Players) != 1 || snap.Players[0].UserID != alice.UserID {
		t.Fatalf("first snapshot should hold only the joiner: %+v", snap)
	}

	wsB := s.dialFloor(t, bob.Token, "lobby")
	snap = decode[wire.PlayersState](t, recv(t, wsB, wire.TypePlayersState))
	if len(snap.Players) != 2 {
		t.Fatalf("second snapshot should hold both players: %+v", snap)
	}

	joined := decode[wire.PlayerState](t, recv(t, wsA, wire.TypePlayerJoined))
	if joined.UserID != bob.UserID || joined.Username != "bob" {
		t.Fatalf("unexpected join broadcast: %+v", joined)
	}

	// out-of-range coordinates get clamped and restamped by the server
	if err := websocket.JSON.Send(wsB, wire.Envelope{Type: wire.TypeMove, Payload: wire.Move{X: 150, Y: -20, Ts: 1}}); err != nil {
		t.Fatalf("sending move: %v", err)
	}
	for _, ws := range []*websocket.Conn{wsA, wsB} {
		moved := decode[wire.PlayerMoved](t, recv(t, ws, wire.TypePlayerMoved))
		if moved.UserID != bob.UserID || moved.X != 100 || moved.Y != 0 {
			t.Fatalf("unexpected move broadcast: %+v", moved)
		}
		if moved.Ts <= 1 {
			t.Fatalf("expected server timestamp, got %d", moved.Ts)
		}
	}

	if got := s.floors.Online(); got != 2 {
		t.Fatalf("online = %d", got)
	}

	req, _ := http.NewRequest(http.MethodGet, s.ts.URL+"/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	var counters map[string]map[string]any
	if err := json.NewDecoder(res.Body).Decode(&counters); err != nil {
		t.Fatalf("decoding metrics: %v", err)
	}
	res.Body.Close()
	if counters["lobby"]["moves"].(float64) != 1 {
		t.Fatalf("unexpected counters: %v", counters["lobby"])
	}

	wsB.Close()
	left := decode[wire.PlayerLeft](t, recv(t, wsA, wire.TypePlayerLeft))
	if left.UserID != bob.UserID {
		t.Fatalf("unexpected leave broadcast: %+v", left)
	}
}

func TestThrowsBroadcastPokesUnicast(t *testing.T) {
	s := newTestServer(t)
	alice := s.registerAndLogin(t, "alice")
	bob := s.registerAndLogin(t, "bob")

	wsA := s.dialFloor(t, alice.Token, "garden")
	recv(t, wsA, wire.TypePlayersState)
	wsB := s.dialFloor(t, bob.Token, "garden")
	recv(t, wsB, wire.TypePlayersState)
	recv(t, wsA, wire.TypePlayerJoined)

	throw := wire.Throw{TargetUserID: bob.UserID, TargetX: 61.5, TargetY: 40}
	if err := websocket.JSON.Send(wsA, wire.Envelope{Type: wire.TypeThrowTomato, Payload: throw}); err != nil {
		t.Fatalf("sending throw: %v", err)
	}
	for _, ws := range []*websocket.Conn{wsA, wsB} {
		thrown := decode[wire.Thrown](t, recv(t, ws, wire.TypeTomatoThrown))
		if thrown.FromUserID != alice.UserID || thrown.TargetUserID != bob.UserID {
			t.Fatalf("unexpected throw broadcast: %+v", thrown)
		}
		if thrown.TargetX != 61.5 || thrown.TargetY != 40 {
			t.Fatalf("throw target moved: %+v", thrown)
		}
	}

	if err := websocket.JSON.Send(wsA, wire.Envelope{Type: wire.TypePoke, Payload: wire.Poke{TargetUserID: bob.UserID}}); err != nil {
		t.Fatalf("sending poke: %v", err)
	}
	poked := decode[wire.Poked](t, recv(t, wsB, wire.TypePoked))
	if poked.FromUserID != alice.UserID {
		t.Fatalf("unexpected poke: %+v", poked)
	}

	if err := websocket.JSON.Send(wsB, wire.Envelope{Type: wire.TypeSendMessage, Payload: wire.SendMessage{TargetUserID: alice.UserID, Text: "hey"}}); err != nil {
		t.Fatalf("sending message: %v", err)
	}
	msg := decode[wire.MessageReceived](t, recv(t, wsA, wire.TypeMessageReceived))
	if msg.FromUserID != bob.UserID || msg.Text != "hey" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	// events at players who are not on the floor bounce back as errors
	if err := websocket.JSON.Send(wsA, wire.Envelope{Type: wire.TypePoke, Payload: wire.Poke{TargetUserID: "ghost"}}); err != nil {
		t.Fatalf("sending poke: %v", err)
	}
	errEnv := decode[wire.Error](t, recv(t, wsA, wire.TypeError))
	if errEnv.Message == "" {
		t.Fatal("expected error message")
	}
}

func TestFloorsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	alice := s.registerAndLogin(t, "alice")
	bob := s.registerAndLogin(t, "bob")

	wsA := s.dialFloor(t, alice.Token, "lobby")
	recv(t, wsA, wire.TypePlayersState)
	wsB := s.dialFloor(t, bob.Token, "attic")
	snap := decode[wire.PlayersState](t, recv(t, wsB, wire.TypePlayersState))
	if len(snap.Players) != 1 {
		t.Fatalf("floors leaked players: %+v", snap)
	}

	ids := s.floors.FloorIDs()
	if len(ids) != 2 || ids[0] != "attic" || ids[1] != "lobby" {
		t.Fatalf("unexpected floor ids: %v", ids)
	}
}

func TestWebsocketRequiresToken(t *testing.T) {
	s := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/floor/lobby"
	cfg, err := websocket.NewConfig(wsURL, s.ts.URL)
	if err != nil {
		t.Fatalf("ws config: %v", err)
	}
	if _, err := websocket.DialConfig(cfg); err == nil {
		t.Fatal("expected dial without token to fail")
	}
}
