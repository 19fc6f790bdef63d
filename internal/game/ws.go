package game

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"example.com/bc-solver/internal/auth"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const authTimeout = 10 * time.Second

type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// handleWS — WebSocket entry: GET /ws/{duelID}. Auth either via
// Authorization: Bearer header, or via a first {"type":"auth"} message
// (browsers cannot set WS headers).
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	duelID, ok := duelIDFromWSPath(r.URL.Path)
	if !ok {
		http.Error(w, "missing or malformed duel id", http.StatusBadRequest)
		return
	}

	var playerID, playerName string
	if h := r.Header.Get("Authorization"); h != "" {
		token := strings.TrimPrefix(h, "Bearer ")
		claims, err := s.verifier.Verify(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		playerID, playerName = claims.UserID, claims.DisplayName
	}

	d, found, err := s.duels.GetOrLoad(r.Context(), duelID)
	if err != nil {
		s.log.Error("load duel", "duelId", duelID, "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "duel not found", http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}

	// header auth missing: the first message must be an auth envelope
	if playerID == "" {
		_ = ws.SetReadDeadline(time.Now().Add(authTimeout))
		claims, err := readAuthMessage(ws, s.verifier)
		if err != nil {
			_ = ws.WriteJSON(Envelope{
				Type:    "error",
				Payload: mustJSON(ErrorPayload{Code: "unauthorized", Message: "auth required"}),
			})
			cc.Close()
			return
		}
		_ = ws.SetReadDeadline(time.Time{})
		playerID, playerName = claims.UserID, claims.DisplayName
	}

	if code, msg := d.Attach(playerID, playerName, cc); code != "" {
		_ = ws.WriteJSON(Envelope{
			Type:    "error",
			Payload: mustJSON(ErrorPayload{Code: code, Message: msg}),
		})
		cc.Close()
		return
	}

	// writer loop
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	d.SendState()

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			d.SendError("bad_json", "invalid json")
			continue
		}

		s.dispatch(d, env)
	}

	d.Detach()
	cc.Close()
}

func (s *Server) dispatch(d *Duel, env Envelope) {
	switch env.Type {
	case "auth":
		// already authenticated; ignore

	case "set_secret":
		var p SetSecretPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			d.SendError("bad_input", "invalid payload")
			return
		}
		if err := d.SetSecret(p.Secret); err != nil {
			d.SendError(wireCode(err), err.Error())
		}

	case "human_guess":
		var p HumanGuessPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			d.SendError("bad_input", "invalid payload")
			return
		}
		if err := d.HumanGuess(p.Guess); err != nil {
			d.SendError(wireCode(err), err.Error())
		}

	case "ai_turn":
		if err := d.AITurn(); err != nil {
			d.SendError(wireCode(err), err.Error())
		}

	case "ai_feedback":
		var p AIFeedbackPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			d.SendError("bad_input", "invalid payload")
			return
		}
		if err := d.AIFeedback(p.Bulls, p.Cows); err != nil {
			d.SendError(wireCode(err), err.Error())
		}

	case "rematch_request":
		if err := d.RequestRematch(); err != nil {
			d.SendError(wireCode(err), err.Error())
		}

	default:
		d.SendError("unknown_type", "unknown message type")
	}
}

func readAuthMessage(ws *websocket.Conn, verifier TokenVerifier) (*auth.Claims, error) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return nil, err
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		if env.Type != "auth" {
			continue
		}

		var p AuthPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			continue
		}
		return verifier.Verify(p.Token)
	}
}
