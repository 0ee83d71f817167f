// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package netconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/aplane-algo/btswitch/internal/fsutil"
)

// RestartNote is printed after every successful switch.
const RestartNote = "Note: You may need to restart your Bittensor services to apply this change."

// Recorder receives successful switches, e.g. for a history log.
type Recorder interface {
	Record(from, to Network, configPath string) error
}

// Switcher reads and writes the network config file at a fixed path.
// It holds no document state; every operation reloads from disk.
type Switcher struct {
	path     string
	out      io.Writer
	recorder Recorder
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithOutput sets where user-facing messages are printed (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Switcher) {
		s.out = w
	}
}

// WithRecorder sets a recorder notified after each successful switch.
func WithRecorder(r Recorder) Option {
	return func(s *Switcher) {
		s.recorder = r
	}
}

// New returns a Switcher for the config file at path.
// The parent directory is created if it does not exist.
func New(path string, opts ...Option) (*Switcher, error) {
	s := &Switcher{path: path, out: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}
	if err := fsutil.MkdirAll(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return s, nil
}

// Path returns the config file path.
func (s *Switcher) Path() string {
	return s.path
}

// Read loads the config document. A missing file or content that is not a
// JSON object yields DefaultDocument. Other read failures are returned.
func (s *Switcher) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", s.path).Debug("Config file not found, using defaults")
			return DefaultDocument(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc, ok := ParseDocument(data)
	if !ok {
		log.WithField("path", s.path).Debug("Config file is not a JSON object, using defaults")
		return DefaultDocument(), nil
	}
	log.WithFields(log.Fields{"path": s.path, "keys": doc.Keys()}).Debug("Loaded config file")
	return doc, nil
}

// Write replaces the config file with doc.
func (s *Switcher) Write(doc *Document) error {
	if err := fsutil.WriteFileAtomic(s.path, doc.Bytes()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	log.WithField("path", s.path).Debug("Wrote config file")
	return nil
}

// Switch sets the network to name and saves the file. An invalid name is
// reported to the user and returned as ErrInvalidNetwork; the file is not touched.
func (s *Switcher) Switch(name string) error {
	network, err := ParseNetwork(name)
	if err != nil {
		fmt.Fprintf(s.out, "Error: Invalid network '%s'. Choose 'mainnet' or 'testnet'.\n", name)
		return err
	}

	doc, err := s.Read()
	if err != nil {
		return err
	}
	previous := doc.Network()
	if err := doc.SetNetwork(network); err != nil {
		return err
	}
	if err := s.Write(doc); err != nil {
		return err
	}

	if s.recorder != nil {
		if err := s.recorder.Record(previous, network, s.path); err != nil {
			log.WithError(err).Warn("Failed to record network switch")
		}
	}

	fmt.Fprintf(s.out, "✅ Successfully set network to %s\n", network)
	fmt.Fprintln(s.out, RestartNote)
	return nil
}

// Current returns the stored network without printing.
func (s *Switcher) Current() (Network, error) {
	doc, err := s.Read()
	if err != nil {
		return "", err
	}
	return doc.Network(), nil
}

// Check prints and returns the stored network. It never creates the file.
func (s *Switcher) Check() (Network, error) {
	network, err := s.Current()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Current network: %s\n", network)
	return network, nil
}
