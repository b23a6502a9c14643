package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// WSConn adapts a websocket connection to the round.SeatConn interface.
// Each text message carries exactly one frame.
type WSConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// SendFramed writes one frame as a text message.
func (w *WSConn) SendFramed(mode wire.Mode, lines ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, []byte(wire.Encode(mode, lines...)))
}

// ReceiveFramed reads text messages until one decodes as a frame and
// returns its payload. Garbage messages are skipped; a malformed reply is
// the client's problem, not a reason to drop the seat.
func (w *WSConn) ReceiveFramed() (string, error) {
	for {
		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		frame, err := wire.Decode(strings.TrimSuffix(string(msg), string(wire.Terminator)))
		if err != nil {
			continue
		}
		return frame.Payload(), nil
	}
}

// Close closes the websocket.
func (w *WSConn) Close() error {
	return w.conn.Close()
}

// serveWebsocket exposes /ws so browser clients can take seats in the same
// rounds as TCP clients.
func (s *Server) serveWebsocket(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	srv := &http.Server{Addr: s.cfg.WebsocketAddr(), Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	s.log.Info("websocket listening", zap.String("addr", s.cfg.WebsocketAddr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("websocket server failed", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.log.Info("websocket connection accepted", zap.String("remote", r.RemoteAddr))
	select {
	case s.joins <- &WSConn{conn: conn}:
	case <-r.Context().Done():
		conn.Close()
	}
}
