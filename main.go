package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"pkt.systems/pslog"

	"github.com/tileterm/tileterm/config"
	"github.com/tileterm/tileterm/glyphmap"
	"github.com/tileterm/tileterm/screen"
	"github.com/tileterm/tileterm/shell"
	"github.com/tileterm/tileterm/terminal"
)

func main() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.With("err", err).Error("config load failed")
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.With("err", err).Error("tileterm exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger pslog.Logger) error {
	glyphs, err := glyphmap.New(cfg.Glyphs.Supplemental, glyphmap.WithUnknownTile(cfg.Glyphs.UnknownTile))
	if err != nil {
		return err
	}

	tc, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := tc.Init(); err != nil {
		return err
	}
	defer tc.Fini()

	surf := screen.New(tc, cfg.Grid.Columns, cfg.Grid.Rows, glyphs)
	sess, err := terminal.New(surf,
		terminal.WithSupplementalGlyphs(cfg.Glyphs.Supplemental),
		terminal.WithUnknownTile(cfg.Glyphs.UnknownTile),
		terminal.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	sh, err := shell.NewPtySession(cfg.FindShell(), uint16(cfg.Grid.Columns), uint16(cfg.Grid.Rows), cfg.Shell.AdditionalEnv)
	if err != nil {
		return err
	}
	defer sh.Close()

	logger.Info("session started",
		"shell", cfg.FindShell(),
		"cols", cfg.Grid.Columns,
		"rows", cfg.Grid.Rows,
	)

	// The reader goroutine owns the session and the surface; the event
	// loop below only writes to the PTY. That keeps ingestion serialized.
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := sh.Read(buf)
			if n > 0 {
				_, _ = sess.Write(buf[:n])
				surf.Show()
			}
			if err != nil {
				logger.Debug("shell stream closed", "err", err)
				_ = tc.PostEvent(tcell.NewEventInterrupt(nil))
				return
			}
		}
	}()

	for {
		switch ev := tc.PollEvent().(type) {
		case *tcell.EventInterrupt:
			logger.Info("session ended", "reason", "shell exit")
			return nil
		case *tcell.EventResize:
			// The tile grid is fixed size; just repaint
			tc.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				logger.Info("session ended", "reason", "ctrl-q")
				return nil
			}
			if b := screen.EncodeKey(ev); b != nil {
				if _, err := sh.Write(b); err != nil {
					logger.Warn("pty write failed", "err", err)
				}
			}
		case nil:
			return nil
		}
	}
}
