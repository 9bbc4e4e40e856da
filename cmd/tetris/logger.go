package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

// sessionLogger returns the logger for session events, or nil when verbose
// is off. The term frontend owns the terminal, so its log goes to path, or
// nowhere when path is empty. The returned close func is never nil.
func sessionLogger(verbose bool, frontend, path string, stderr io.Writer) (*log.Logger, func() error, error) {
	noop := func() error { return nil }
	if !verbose {
		return nil, noop, nil
	}
	if frontend != "term" {
		return log.New(stderr, "tetris: ", log.LstdFlags), noop, nil
	}
	if path == "" {
		return log.New(io.Discard, "", 0), noop, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "tetris: ", log.LstdFlags), f.Close, nil
}
