package config

import (
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	AllowOrigins []string
}

// AllowedOrigins reads the comma separated ALLOWED_ORIGINS list. An empty
// list lets every origin through.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func NewWebSocket() (*WebSocket, error) {
	readLimit, err := lookupInt("WS_READ_LIMIT", 4096)
	if err != nil {
		return nil, err
	}

	ws := &WebSocket{
		ReadLimit:    int64(readLimit),
		AllowOrigins: AllowedOrigins(),
	}
	ws.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     ws.checkOrigin,
	}

	return ws, nil
}

func (ws *WebSocket) checkOrigin(r *http.Request) bool {
	if len(ws.AllowOrigins) == 0 {
		return true
	}
	return slices.Contains(ws.AllowOrigins, r.Header.Get("Origin"))
}
