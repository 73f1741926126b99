package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vancomm/minefield/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrGameOver = errors.New("game is over")
)

// Session is one game. It owns its field exclusively; every access goes
// through the session's mutex. Lookups and moves both count as activity for
// idle eviction.
type Session struct {
	ID        string
	StartedAt time.Time

	mu        sync.Mutex
	field     *mines.Field
	endedAt   *time.Time
	final     mines.Status
	forfeited bool

	lastSeen atomic.Int64
	now      func() time.Time
}

// View is a consistent copy of a session's state taken under its lock.
type View struct {
	ID             string
	Status         mines.Status
	Forfeited      bool
	Snapshot       mines.Snapshot
	MineCount      int
	MinesRemaining int
	StartedAt      time.Time
	EndedAt        *time.Time
}

func newSession(id string, field *mines.Field, now func() time.Time) *Session {
	t := now()
	s := &Session{
		ID:        id,
		StartedAt: t,
		field:     field,
		now:       now,
	}
	s.touch(t)
	return s
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) Reveal(p mines.Position) (View, error) {
	return s.move(func(f *mines.Field) error {
		_, err := f.Reveal(p)
		return err
	})
}

func (s *Session) Flag(p mines.Position) (View, error) {
	return s.move(func(f *mines.Field) error {
		return f.Flag(p)
	})
}

func (s *Session) move(apply func(*mines.Field) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(s.now())

	if s.endedAt != nil {
		return s.view(), ErrGameOver
	}
	if err := apply(s.field); err != nil {
		return s.view(), err
	}

	if s.field.IsDone() {
		t := s.now().UTC()
		s.endedAt = &t
		s.final = s.field.Status()
		if s.final == mines.Lost {
			s.field.RevealAllMines()
		}
	}

	return s.view(), nil
}

// Forfeit ends the game if it is still running and shows every mine.
func (s *Session) Forfeit() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(s.now())

	if s.endedAt == nil {
		t := s.now().UTC()
		s.endedAt = &t
		s.final = mines.Lost
		s.forfeited = true
	}
	s.field.RevealAllMines()

	return s.view()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt != nil
}

func (s *Session) view() View {
	// showing the mines makes the field read as lost, so a finished game
	// reports the status it ended with
	status := s.field.Status()
	if s.endedAt != nil {
		status = s.final
	}
	return View{
		ID:             s.ID,
		Status:         status,
		Forfeited:      s.forfeited,
		Snapshot:       s.field.Snapshot(),
		MineCount:      s.field.MineCount(),
		MinesRemaining: s.field.MinesRemaining(),
		StartedAt:      s.StartedAt,
		EndedAt:        s.endedAt,
	}
}
