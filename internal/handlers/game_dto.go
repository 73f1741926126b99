package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Height  int     `schema:"height"`
	Width   int     `schema:"width"`
	Density float64 `schema:"density"`
}

// ParseNewGameDTO fills in whatever the query leaves out from the
// configured defaults.
func ParseNewGameDTO(src map[string][]string, defaults *config.Field) (NewGameDTO, error) {
	dto := NewGameDTO{
		Height:  defaults.Height,
		Width:   defaults.Width,
		Density: defaults.Density,
	}
	err := decoder.Decode(&dto, src)
	return dto, err
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (m MoveDTO) Position() mines.Position {
	return mines.Position{Row: m.Row, Col: m.Col}
}

type GameSessionDTO struct {
	GameSessionID  string              `json:"game_session_id"`
	Token          string              `json:"token,omitempty"`
	Height         int                 `json:"height"`
	Width          int                 `json:"width"`
	MineCount      int                 `json:"mine_count"`
	MinesRemaining int                 `json:"mines_remaining"`
	Status         mines.Status        `json:"status"`
	Forfeited      bool                `json:"forfeited"`
	Grid           [][]mines.CellState `json:"grid"`
	Cells          [][]mines.CellView  `json:"cells"`
	StartedAt      int64               `json:"started_at"`
	EndedAt        *int64              `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(v session.View) *GameSessionDTO {
	var endedAt *int64
	if v.EndedAt != nil {
		e := v.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionID:  v.ID,
		Height:         v.Snapshot.Height,
		Width:          v.Snapshot.Width,
		MineCount:      v.MineCount,
		MinesRemaining: v.MinesRemaining,
		Status:         v.Status,
		Forfeited:      v.Forfeited,
		Grid:           v.Snapshot.States(),
		Cells:          v.Snapshot.Cells,
		StartedAt:      v.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}
