package game

import "encoding/json"

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// incoming payloads

type AuthPayload struct {
	Token string `json:"token"`
}

type SetSecretPayload struct {
	Secret string `json:"secret"`
}

type HumanGuessPayload struct {
	Guess string `json:"guess"`
}

type AIFeedbackPayload struct {
	Bulls int `json:"bulls"`
	Cows  int `json:"cows"`
}

// outgoing payloads

// GuessResult is one completed round on either side of the duel.
type GuessResult struct {
	Guess string `json:"guess"`
	Bulls int    `json:"bulls"`
	Cows  int    `json:"cows"`
}

type HumanResultPayload struct {
	Guess string `json:"guess"`
	Bulls int    `json:"bulls"`
	Cows  int    `json:"cows"`
	Won   bool   `json:"won"`
}

type AIGuessPayload struct {
	Round int    `json:"round"`
	Guess string `json:"guess"`
}

type SeriesScore struct {
	HumanWins int `json:"humanWins"`
	AIWins    int `json:"aiWins"`
}

type StatePayload struct {
	DuelID           string        `json:"duelId"`
	PlayerName       string        `json:"playerName"`
	Phase            string        `json:"phase"` // waiting_player|playing|finished
	Turn             string        `json:"turn"`  // human|ai
	HumanGuesses     []GuessResult `json:"humanGuesses"`
	AIGuesses        []GuessResult `json:"aiGuesses"`
	PendingAIGuess   string        `json:"pendingAiGuess,omitempty"`
	CandidatesLeft   int           `json:"candidatesLeft"`
	SecretRegistered bool          `json:"secretRegistered"`
	Winner           string        `json:"winner"` // human|ai|"" (while running)
	RevealedAISecret string        `json:"revealedAiSecret,omitempty"`
	Series           SeriesScore   `json:"series"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
