package handlers

import (
	"fmt"
	"strings"
)

type GameMove uint8

const (
	Reveal GameMove = iota + 1
	Flag
	lastMove
)

func (m GameMove) String() string {
	switch m {
	case Reveal:
		return "Reveal"
	case Flag:
		return "Flag"
	default:
		return fmt.Sprintf("GameMove(%d)", uint8(m))
	}
}

var ErrBadMove error

func init() {
	var allowedMoves []string
	for i := 1; i < int(lastMove); i++ {
		allowedMoves = append(allowedMoves, "'"+GameMove(i).String()+"'")
	}
	ErrBadMove = fmt.Errorf(
		"move must be one of %s",
		strings.ToLower(strings.Join(allowedMoves, ", ")),
	)
}

func ParseGameMove(s string) (move GameMove, err error) {
	switch strings.ToLower(s) {
	case "reveal", "open":
		move = Reveal
	case "flag":
		move = Flag
	default:
		err = ErrBadMove
	}
	return
}
