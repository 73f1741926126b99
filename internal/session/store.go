package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minefield/internal/mines"
)

// Store keeps every live session in memory. Sessions that have not been
// looked up for longer than the TTL are dropped by Evict.
type Store struct {
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(logger *slog.Logger, ttl time.Duration) *Store {
	return &Store{
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (st *Store) Create(field *mines.Field) *Session {
	s := newSession(uuid.NewString(), field, st.now)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Debug("session created",
		slog.String("id", s.ID),
		slog.Int("height", field.Height()),
		slog.Int("width", field.Width()),
		slog.Int("mines", field.MineCount()),
	)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Evict removes idle sessions and reports how many went.
func (st *Store) Evict() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Sweep calls Evict every interval until ctx is done.
func (st *Store) Sweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Evict(); n > 0 {
				st.logger.Info("evicted idle sessions",
					slog.Int("count", n),
					slog.Int("remaining", st.Len()),
				)
			}
		}
	}
}
