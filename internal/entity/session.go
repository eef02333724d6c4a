package entity

const (
	SlotOne = "1"
	SlotTwo = "2"
)

// Session is one two-player game, in progress or awaiting its second player.
// The JSON tags define the wire shape; storage encodes rows separately.
type Session struct {
	ID            int64             `json:"id"`
	Type          string            `json:"type"`
	Board         []string          `json:"board"`
	Active        bool              `json:"active"`
	CurrentPlayer string            `json:"current_player"`
	Players       map[string]string `json:"players"`
}

func NewSession(gameType, creatorName string, board []string) *Session {
	return &Session{
		Type:          gameType,
		Board:         board,
		Active:        false,
		CurrentPlayer: SlotOne,
		Players:       map[string]string{SlotOne: creatorName},
	}
}

// Join seats a player in slot two and activates the session. Calling it on
// an already active session replaces the second player and nothing else.
func (that *Session) Join(playerName string) {
	that.Players[SlotTwo] = playerName
	that.Active = true
}

// AdvanceTurn hands the turn to the other slot. While the session is still
// waiting for a second player the turn stays with slot one, so the current
// player is always a seated one.
func (that *Session) AdvanceTurn() {
	next := SlotTwo
	if that.CurrentPlayer == SlotTwo {
		next = SlotOne
	}

	if _, ok := that.Players[next]; ok {
		that.CurrentPlayer = next
	}
}

func (that *Session) IsReady() bool {
	_, ok := that.Players[SlotTwo]
	return ok
}
