package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/session"
)

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	store    *session.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	field    *config.Field
	sessions *config.Session
}

func New(logger *slog.Logger) (*App, error) {
	field, err := config.NewField()
	if err != nil {
		return nil, fmt.Errorf("unable to read field config: %w", err)
	}

	sessions, err := config.NewSession()
	if err != nil {
		return nil, fmt.Errorf("unable to read session config: %w", err)
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return nil, fmt.Errorf("unable to read jwt config: %w", err)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, fmt.Errorf("unable to read ws config: %w", err)
	}

	app := &App{
		logger:   logger,
		router:   http.NewServeMux(),
		store:    session.NewStore(logger, sessions.TTL),
		jwt:      jwt,
		ws:       ws,
		field:    field,
		sessions: sessions,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.jwt),
		middleware.Cors(a.ws.AllowOrigins),
		middleware.Logging(a.logger),
		middleware.Recover(a.logger),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Sweep(gCtx, a.sessions.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
