package game

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"example.com/bc-solver/internal/auth"
)

// TokenVerifier abstracts JWT verification so tests can stub it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Server struct {
	duels    *DuelService
	verifier TokenVerifier
	log      *slog.Logger
}

func NewServer(duels *DuelService, verifier TokenVerifier, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{duels: duels, verifier: verifier, log: log}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/duel", s.handleCreateDuel)
	mux.HandleFunc("/ws/", s.handleWS)
}

func (s *Server) handleCreateDuel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	duelID := randID(10)

	if _, err := s.duels.Create(r.Context(), duelID); err != nil {
		s.log.Error("create duel", "err", err)
		http.Error(w, "failed to create duel", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"duelId": duelID,
	})
}

// duelIDFromWSPath extracts the id from /ws/{duelID}: lowercase alphanumeric,
// at most 64 chars, no extra segments.
func duelIDFromWSPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/ws/")
	if !ok || rest == "" || len(rest) > 64 {
		return "", false
	}
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return "", false
		}
	}
	return rest, true
}

func randID(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
