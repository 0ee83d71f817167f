// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package netconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSwitch struct {
	from, to Network
	path     string
}

type fakeRecorder struct {
	switches []recordedSwitch
	err      error
}

func (r *fakeRecorder) Record(from, to Network, configPath string) error {
	r.switches = append(r.switches, recordedSwitch{from: from, to: to, path: configPath})
	return r.err
}

// newTestSwitcher returns a Switcher rooted in a fresh home directory
// whose .bittensor directory does not exist yet.
func newTestSwitcher(t *testing.T, opts ...Option) (*Switcher, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), DirName, FileName)
	out := &bytes.Buffer{}
	sw, err := New(path, append([]Option{WithOutput(out)}, opts...)...)
	require.NoError(t, err)
	return sw, out
}

func writeConfig(t *testing.T, sw *Switcher, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(sw.Path(), []byte(content), 0644))
}

func readConfig(t *testing.T, sw *Switcher) string {
	t.Helper()
	data, err := os.ReadFile(sw.Path())
	require.NoError(t, err)
	return string(data)
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bittensor", "network_config.json"), path)
}

func TestNewCreatesDirectory(t *testing.T) {
	sw, _ := newTestSwitcher(t)

	info, err := os.Stat(filepath.Dir(sw.Path()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(sw.Path())
	assert.True(t, os.IsNotExist(err), "New must not create the config file")
}

func TestReadFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{"missing file", nil},
		{"malformed json", ptr(`{"network": `)},
		{"not an object", ptr(`[1, 2, 3]`)},
		{"empty file", ptr(``)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, _ := newTestSwitcher(t)
			if tt.content != nil {
				writeConfig(t, sw, *tt.content)
			}

			doc, err := sw.Read()
			require.NoError(t, err)
			assert.Equal(t, NotSet, doc.Network())
		})
	}
}

func TestReadPropagatesOtherErrors(t *testing.T) {
	sw, _ := newTestSwitcher(t)
	require.NoError(t, os.Mkdir(sw.Path(), 0755))

	_, err := sw.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = sw.Check()
	require.Error(t, err)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	sw, _ := newTestSwitcher(t)
	doc, ok := ParseDocument([]byte(`{"network": "testnet", "extra": "keepme"}`))
	require.True(t, ok)

	require.NoError(t, sw.Write(doc))

	loaded, err := sw.Read()
	require.NoError(t, err)
	assert.Equal(t, Testnet, loaded.Network())
	assert.Equal(t, doc.Bytes(), loaded.Bytes())
}

func TestSwitchFreshHome(t *testing.T) {
	sw, out := newTestSwitcher(t)

	require.NoError(t, sw.Switch("testnet"))

	assert.Equal(t, "{\n    \"network\": \"testnet\"\n}", readConfig(t, sw))
	assert.Equal(t,
		"✅ Successfully set network to testnet\n"+RestartNote+"\n",
		out.String())

	current, err := sw.Current()
	require.NoError(t, err)
	assert.Equal(t, Testnet, current)
}

func TestSwitchPreservesUnknownKeys(t *testing.T) {
	sw, _ := newTestSwitcher(t)
	writeConfig(t, sw, `{"network": "mainnet", "extra": "keepme"}`)

	require.NoError(t, sw.Switch("testnet"))

	assert.Equal(t, "{\n    \"network\": \"testnet\",\n    \"extra\": \"keepme\"\n}", readConfig(t, sw))
}

func TestSwitchReplacesMalformedFile(t *testing.T) {
	sw, _ := newTestSwitcher(t)
	writeConfig(t, sw, `{broken`)

	require.NoError(t, sw.Switch("mainnet"))

	assert.Equal(t, "{\n    \"network\": \"mainnet\"\n}", readConfig(t, sw))
}

func TestSwitchIsIdempotent(t *testing.T) {
	sw, _ := newTestSwitcher(t)

	require.NoError(t, sw.Switch("mainnet"))
	once := readConfig(t, sw)
	require.NoError(t, sw.Switch("mainnet"))

	assert.Equal(t, once, readConfig(t, sw))
}

func TestSwitchInvalidNetworkLeavesFileUnchanged(t *testing.T) {
	rec := &fakeRecorder{}
	sw, out := newTestSwitcher(t, WithRecorder(rec))
	original := `{"network": "mainnet", "extra": 1}`
	writeConfig(t, sw, original)

	err := sw.Switch("invalidnet")

	require.ErrorIs(t, err, ErrInvalidNetwork)
	assert.Equal(t, "Error: Invalid network 'invalidnet'. Choose 'mainnet' or 'testnet'.\n", out.String())
	assert.Equal(t, original, readConfig(t, sw))
	assert.Empty(t, rec.switches)
}

func TestSwitchInvalidNetworkDoesNotCreateFile(t *testing.T) {
	sw, _ := newTestSwitcher(t)

	require.ErrorIs(t, sw.Switch("Not set"), ErrInvalidNetwork)

	_, err := os.Stat(sw.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestSwitchRecordsHistory(t *testing.T) {
	rec := &fakeRecorder{}
	sw, _ := newTestSwitcher(t, WithRecorder(rec))

	require.NoError(t, sw.Switch("mainnet"))
	require.NoError(t, sw.Switch("testnet"))

	assert.Equal(t, []recordedSwitch{
		{from: NotSet, to: Mainnet, path: sw.Path()},
		{from: Mainnet, to: Testnet, path: sw.Path()},
	}, rec.switches)
}

func TestSwitchIgnoresRecorderFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	sw, out := newTestSwitcher(t, WithRecorder(rec))

	require.NoError(t, sw.Switch("mainnet"))
	assert.Contains(t, out.String(), "Successfully set network to mainnet")
	assert.Len(t, rec.switches, 1)
}

func TestCheckMissingFile(t *testing.T) {
	sw, out := newTestSwitcher(t)

	network, err := sw.Check()
	require.NoError(t, err)

	assert.Equal(t, NotSet, network)
	assert.Equal(t, "Current network: Not set\n", out.String())
	_, statErr := os.Stat(sw.Path())
	assert.True(t, os.IsNotExist(statErr), "check must not create the config file")
}

func TestCheckExistingFile(t *testing.T) {
	sw, out := newTestSwitcher(t)
	writeConfig(t, sw, `{"extra": "x", "network": "mainnet"}`)

	network, err := sw.Check()
	require.NoError(t, err)

	assert.Equal(t, Mainnet, network)
	assert.Equal(t, "Current network: mainnet\n", out.String())
}

func ptr(s string) *string {
	return &s
}

func TestSwitchRepeatedNetworkKey(t *testing.T) {
	sw, out := newTestSwitcher(t)
	writeConfig(t, sw, `{"network": "mainnet", "port": 9944, "network": "testnet"}`)

	got, err := sw.Check()
	require.NoError(t, err)
	assert.Equal(t, Testnet, got)
	assert.Equal(t, "Current network: testnet\n", out.String())

	require.NoError(t, sw.Switch("mainnet"))
	assert.Equal(t, "{\n    \"network\": \"mainnet\",\n    \"port\": 9944\n}", readConfig(t, sw))
}
