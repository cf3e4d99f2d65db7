// SPDX-License-Identifier: EPL-2.0

// Command wavedit loads an audio file, applies a script of edits and
// exports the result as a 16-bit PCM WAV file.
//
// Usage:
//
//	wavedit [options] -in <input> -out <output.wav>
//
// Options:
//
//	-rate       Engine sample rate in Hz (default 8000)
//	-mono       Mix the input down to one channel
//	-ops        Edit script, e.g. "select:0.25:0.5,cutclip,select:0.1:0.1,paste"
//	-state      Directory to restore the session from and persist it to
//	-log-level  Log level (debug, info, warn, error)
//
// Script steps are separated by commas, semicolons or spaces:
//
//	select:S:E   select from S to E seconds (S == E places a cursor)
//	cut          keep only the selection
//	copy         copy the selection to the clipboard
//	cutclip      move the selection to the clipboard
//	paste        insert the clipboard at the cursor or over the selection
//	delete       remove the selection
//	gain:F       scale the selection, or everything, by F (0 to 4)
//	undo, redo   step through the history
//	saveclip:N   save the selection as clip N in the library
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit"
	"github.com/ik5/wavedit/session"
	"github.com/ik5/wavedit/store"
)

type config struct {
	in       string
	out      string
	rate     int
	mono     bool
	ops      string
	stateDir string
	logLevel string
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.in, "in", "", "Input audio file (wav, mp3, ogg, aiff)")
	flag.StringVar(&cfg.out, "out", "", "Output WAV file")
	flag.IntVar(&cfg.rate, "rate", session.DefaultSampleRate, "Engine sample rate in Hz")
	flag.BoolVar(&cfg.mono, "mono", false, "Mix the input down to one channel")
	flag.StringVar(&cfg.ops, "ops", "", "Edit script")
	flag.StringVar(&cfg.stateDir, "state", "", "Session state directory")
	flag.StringVar(&cfg.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -in <input> -out <output.wav>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -in take.mp3 -out trimmed.wav -ops select:1:2.5,cut\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -in take.wav -out louder.wav -mono -ops gain:1.5\n", os.Args[0])
	}
	flag.Parse()

	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.in == "" && cfg.stateDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, cfg, logrus.NewEntry(logger)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, cfg *config, log *logrus.Entry) error {
	steps, err := parseScript(cfg.ops)
	if err != nil {
		return err
	}

	loader := wavedit.NewLoader(
		wavedit.WithTargetRate(cfg.rate),
		wavedit.WithMono(cfg.mono),
		wavedit.WithLoaderLogger(log),
	)
	sess := session.New(
		session.WithSampleRate(cfg.rate),
		session.WithDecoder(loader),
		session.WithLogger(log),
	)

	var st store.Store
	if cfg.stateDir != "" {
		fs, err := store.NewFile(cfg.stateDir)
		if err != nil {
			return err
		}
		st = fs
		if err := sess.RestoreFrom(ctx, st); err != nil {
			return fmt.Errorf("restoring session: %w", err)
		}
	}

	if cfg.in != "" {
		if err := load(ctx, sess, cfg.in); err != nil {
			return err
		}
	}
	if sess.FrameCount() == 0 {
		return errors.New("nothing loaded")
	}

	if err := run(sess, steps); err != nil {
		return err
	}

	if cfg.out != "" {
		if err := export(sess, cfg.out); err != nil {
			return err
		}
		fmt.Printf("Wrote %s: %s, %d frames at %d Hz\n",
			cfg.out, session.FormatTime(sess.Duration()), sess.FrameCount(), cfg.rate)
	}

	if st != nil {
		if err := sess.Persist(ctx, st); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
	}

	return nil
}

func load(ctx context.Context, sess *session.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return sess.Load(ctx, filepath.Base(path), f, "")
}

func export(sess *session.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := sess.Export(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
