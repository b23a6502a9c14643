// Package server is the transport edge: it accepts seat connections over
// TCP and websocket, holds the per-round registration window, and feeds the
// accepted seats into coordinated rounds (or independent solo games).
package server

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/config"
	"github.com/orkadesh/blackjacksrv/events"
	"github.com/orkadesh/blackjacksrv/round"
)

// Server accepts seat connections and plays rounds forever, one round at a
// time.
type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	store events.EventStore
	mgr   *Manager
	joins chan round.SeatConn
}

// New creates a server from configuration.
func New(cfg *config.Config, log *zap.Logger, store events.EventStore) *Server {
	return &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		mgr:   NewManager(),
		joins: make(chan round.SeatConn),
	}
}

// Run listens for seats and plays rounds until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	go func() {
		<-ctx.Done()
		ln.Close()
		s.mgr.CloseAll()
	}()
	go s.acceptLoop(ctx, ln)
	if s.cfg.WebsocketAddr() != "" {
		go s.serveWebsocket(ctx)
	}
	s.log.Info("server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("mode", s.cfg.Mode))

	if s.cfg.Mode == config.ModeSolo {
		return s.runSolo(ctx)
	}
	return s.runTable(ctx)
}

// runTable plays coordinated multi-seat rounds back to back.
func (s *Server) runTable(ctx context.Context) error {
	rules := s.rules()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		seats := s.register(ctx)
		if err := ctx.Err(); err != nil {
			for _, seat := range seats {
				_ = seat.Conn.Close()
				s.mgr.Remove(seat.ID)
			}
			return err
		}
		if len(seats) == 0 {
			s.log.Info("nobody connected")
			continue
		}

		coord := round.NewCoordinator(rules, s.store, s.log, seats)
		if err := coord.Run(ctx); err != nil {
			s.log.Warn("round finished with error", zap.String("round", coord.ID), zap.Error(err))
		}
		for _, seat := range seats {
			_ = seat.Conn.Close()
			s.mgr.Remove(seat.ID)
		}
	}
}

// runSolo serves every connection its own independent game.
func (s *Server) runSolo(ctx context.Context) error {
	game := round.NewSoloGame(s.rules(), s.store, s.log)
	for {
		select {
		case conn := <-s.joins:
			seat := round.NewSeat(conn, s.cfg.StartingBalance)
			s.mgr.Add(seat.ID, conn)
			s.log.Info("solo seat connected", zap.String("seat", seat.ID))
			go func() {
				defer s.mgr.Remove(seat.ID)
				defer conn.Close()
				if err := game.Play(ctx, seat); err != nil {
					s.log.Warn("solo game ended with error", zap.String("seat", seat.ID), zap.Error(err))
				}
			}()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// register collects up to MaxSeats connections within the registration
// window. Seats connecting while a round is in play wait in the accept
// queue for the next window.
func (s *Server) register(ctx context.Context) []*round.Seat {
	s.log.Info("registration open",
		zap.Int("capacity", s.cfg.MaxSeats),
		zap.Duration("window", s.cfg.RegistrationWindow()))

	window := time.NewTimer(s.cfg.RegistrationWindow())
	defer window.Stop()

	var seats []*round.Seat
	for len(seats) < s.cfg.MaxSeats {
		select {
		case conn := <-s.joins:
			seat := round.NewSeat(conn, s.cfg.StartingBalance)
			seats = append(seats, seat)
			s.mgr.Add(seat.ID, conn)
			s.log.Info("seat registered",
				zap.String("seat", seat.ID),
				zap.Int("free", s.cfg.MaxSeats-len(seats)))
		case <-window.C:
			return seats
		case <-ctx.Done():
			return seats
		}
	}
	s.log.Info("all boxes are occupied")
	return seats
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}
		seatConn := NewConn(conn)
		s.log.Info("connection accepted", zap.String("remote", seatConn.RemoteAddr()))
		select {
		case s.joins <- seatConn:
		case <-ctx.Done():
			conn.Close()
			return
		}
	}
}

func (s *Server) rules() round.Rules {
	return round.Rules{
		Decks:           s.cfg.Decks,
		MinimumBet:      s.cfg.MinimumBet,
		StartingBalance: s.cfg.StartingBalance,
	}
}
