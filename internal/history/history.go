// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package history keeps an append-only log of network switches next to the
// config file, one JSON object per line.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aplane-algo/btswitch/internal/netconfig"
)

// FileName is the history log inside the .bittensor directory.
const FileName = "network_switch_history.log"

const (
	maxLogSizeMB  = 1
	maxLogBackups = 3
)

// Entry is a single recorded switch.
type Entry struct {
	Timestamp time.Time         `json:"timestamp"`
	From      netconfig.Network `json:"from"`
	To        netconfig.Network `json:"to"`
	Path      string            `json:"path,omitempty"` // Config file that was changed
}

// Log appends entries to a size-rotated file.
// The file is created on the first Record call.
type Log struct {
	mu     sync.Mutex
	path   string
	writer *lumberjack.Logger
	now    func() time.Time
}

// Open returns a Log writing to path.
func Open(path string) *Log {
	return &Log{
		path: path,
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
		},
		now: time.Now,
	}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Record appends a switch entry. It satisfies netconfig.Recorder.
func (l *Log) Record(from, to netconfig.Network, configPath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Timestamp: l.now().UTC(),
		From:      from,
		To:        to,
		Path:      configPath,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}

// Close closes the underlying file, if it was opened.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Close()
}

// Recent returns up to limit of the newest entries in the current log file,
// oldest first. A missing file yields no entries. Lines that do not decode
// are skipped. A limit <= 0 returns every entry.
func Recent(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			log.WithError(err).Debug("Skipping malformed history line")
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
