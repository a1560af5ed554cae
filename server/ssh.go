// Package server serves interactive noise previews over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gliderlabs/ssh"

	"github.com/pthm-cable/latticenoise/config"
	"github.com/pthm-cable/latticenoise/render"
)

// SSHServer wraps the SSH listener. Every session gets its own View.
type SSHServer struct {
	cfg    *config.Config
	server *ssh.Server
}

// NewSSHServer creates a new SSH server from the loaded configuration.
func NewSSHServer(cfg *config.Config) (*SSHServer, error) {
	s := &SSHServer{cfg: cfg}
	s.server = &ssh.Server{
		Addr:        cfg.Server.Addr,
		IdleTimeout: cfg.Derived.IdleTimeout,
		Handler:     s.handleSession,
	}

	if err := s.server.SetOption(ssh.HostKeyFile(cfg.Server.HostKey)); err != nil {
		return nil, fmt.Errorf("set host key: %w", err)
	}
	return s, nil
}

// Start begins listening for SSH connections. It blocks until Shutdown.
func (s *SSHServer) Start() error {
	slog.Info("ssh server listening", "addr", s.cfg.Server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting sessions and waits for open ones to finish.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	log := slog.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	log.Info("session opened")
	defer log.Info("session closed")

	view, err := NewView(s.cfg.Noise, s.cfg.Sampling.Type, s.cfg.Server.PanStep, s.cfg.Server.ZoomFactor)
	if err != nil {
		log.Error("creating view", "error", err)
		fmt.Fprintf(sess, "Error: %v\n", err)
		return
	}

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := make(chan []Action)
	done := make(chan struct{})
	defer close(done)

	// Goroutine: read input
	go func() {
		defer close(inputCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			select {
			case inputCh <- parseInput(buf[:n]):
			case <-done:
				return
			}
		}
	}()

	cols, rows := ptyReq.Window.Width, ptyReq.Window.Height
	draw := func() bool {
		frame, err := view.Render(cols, rows)
		if err != nil {
			log.Error("render", "error", err)
			return false
		}
		_, err = io.WriteString(sess, frame)
		return err == nil
	}

	if !draw() {
		return
	}
	for {
		select {
		case <-sess.Context().Done():
			return
		case win, ok := <-winCh:
			if !ok {
				return
			}
			cols, rows = win.Width, win.Height
			io.WriteString(sess, render.ClearScreen())
		case actions, ok := <-inputCh:
			if !ok {
				return
			}
			for _, a := range actions {
				quit, err := view.Apply(a)
				if err != nil {
					log.Warn("action rejected", "action", a, "error", err)
				}
				if quit {
					return
				}
			}
		}
		if !draw() {
			return
		}
	}
}
