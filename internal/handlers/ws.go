package handlers

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type wsCommand string

const (
	wsGet     wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsForfeit wsCommand = "r"
)

var commandNargs = map[wsCommand]int{
	wsGet:     0,
	wsOpen:    2,
	wsFlag:    2,
	wsForfeit: 0,
}

var errUnknownCommand = errors.New("unknown command")

func byLine(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parsePosition(args []string) (p mines.Position, err error) {
	if p.Row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if p.Col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// execute runs a single command line against the session.
func execute(s *session.Session, line string) (session.View, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return s.View(), nil
	}

	cmd := wsCommand(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return session.View{}, fmt.Errorf("%w %q", errUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return session.View{}, fmt.Errorf("invalid number of arguments for %q", parts[0])
	}

	switch cmd {
	case wsOpen, wsFlag:
		p, err := parsePosition(parts[1:])
		if err != nil {
			return session.View{}, err
		}
		if cmd == wsOpen {
			return s.Reveal(p)
		}
		return s.Flag(p)
	case wsForfeit:
		return s.Forfeit(), nil
	default:
		return s.View(), nil
	}
}

func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, s *session.Session) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var (
			view    session.View
			moveErr error
		)
		for _, line := range byLine(strings.TrimSpace(string(buf))) {
			view, moveErr = execute(s, strings.TrimSpace(line))
			if moveErr != nil || view.EndedAt != nil {
				break
			}
		}

		if moveErr != nil {
			if err := conn.WriteJSON(wrapError(moveErr)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		if err := conn.WriteJSON(NewGameSessionDTO(view)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	s, err := g.store.Get(id)
	if err != nil {
		g.sendError(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	g.logger.Debug("established WS connection", slog.String("id", id))

	err = g.wsRunGameLoop(conn, s)
	if err != nil && !websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		g.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}
