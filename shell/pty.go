package shell

import (
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// PtySession manages a pseudo-terminal connection to a shell. Its Read end
// is the byte stream a terminal session ingests; its Write end carries
// encoded keyboard input.
type PtySession struct {
	cmd *exec.Cmd
	pty *os.File

	mu     sync.Mutex
	closed bool
}

// NewPtySession starts shellPath on a fresh PTY sized cols x rows. Extra
// environment variables are appended to the inherited environment.
func NewPtySession(shellPath string, cols, rows uint16, env map[string]string) (*PtySession, error) {
	if shellPath == "" {
		shellPath = "/bin/sh"
	}
	cmd := exec.Command(shellPath)

	// New session - keeps the child independent from the parent terminal
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	cmd.Env = append(os.Environ(), "TERM=vt100")
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		return nil, err
	}

	return &PtySession{cmd: cmd, pty: ptmx}, nil
}

// Read reads shell output; it blocks until bytes are available or the PTY
// closes.
func (s *PtySession) Read(p []byte) (int, error) {
	return s.pty.Read(p)
}

// Write sends input bytes to the shell.
func (s *PtySession) Write(p []byte) (int, error) {
	return s.pty.Write(p)
}

// Resize updates the PTY window size.
func (s *PtySession) Resize(cols, rows uint16) error {
	return pty.Setsize(s.pty, &pty.Winsize{Rows: rows, Cols: cols})
}

// Wait blocks until the shell exits.
func (s *PtySession) Wait() error {
	return s.cmd.Wait()
}

// Close tears the session down, killing the shell if it is still running.
func (s *PtySession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.pty.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		_, _ = s.cmd.Process.Wait()
	}
	return err
}
