package game

import (
	"time"
)

// GameRecord is the persisted shape of a completed game. Moves holds the
// ledger serialized as a JSON array - kept as a string so the driver sends
// it as text rather than bytea.
type GameRecord struct {
	ID           string    `db:"id"`
	RoomCode     string    `db:"room_code"`
	PlayerX      string    `db:"player_x"`
	PlayerO      string    `db:"player_o"`
	PlayerXName  string    `db:"player_x_name"`
	PlayerOName  string    `db:"player_o_name"`
	WinnerUserID *string   `db:"winner_user_id"`
	Result       string    `db:"result"`
	Moves        string    `db:"moves"`
	CreatedAt    time.Time `db:"created_at"`
}
