package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	vcr "gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// recorderMode determines whether we're recording or replaying.
type recorderMode int

const (
	// modeReplay uses existing fixtures only.
	modeReplay recorderMode = iota
	// modeRecord records new fixtures (overwrites existing).
	modeRecord
)

// getRecorderMode determines the recorder mode from the environment.
// UNDRAFT_VCR_MODE=record records new fixtures; the default replays.
func getRecorderMode() recorderMode {
	if os.Getenv("UNDRAFT_VCR_MODE") == "record" {
		return modeRecord
	}
	return modeReplay
}

// Recorder wraps a VCR recorder for testing GitHub API interactions.
//
// In replay mode (default) it serves fixtures from testdata/fixtures/; in
// record mode (UNDRAFT_VCR_MODE=record, with a real GITHUB_TOKEN set) it
// records live interactions to new fixtures.
type Recorder struct {
	recorder *vcr.Recorder
	mode     recorderMode
}

// NewRecorder creates a VCR recorder for the named fixture. When the
// cassette is missing in replay mode the returned error wraps
// os.ErrNotExist so callers can skip.
func NewRecorder(t *testing.T, name string) (*Recorder, error) {
	t.Helper()

	mode := getRecorderMode()

	// go-vcr adds the ".yaml" extension itself.
	fixturePath := filepath.Join("testdata", "fixtures", name)

	vcrMode := vcr.ModeReplaying
	if mode == modeRecord {
		vcrMode = vcr.ModeRecording
	}

	r, err := vcr.NewAsMode(fixturePath, vcrMode, nil)
	if err != nil {
		if errors.Is(err, cassette.ErrCassetteNotFound) {
			return nil, fmt.Errorf("cassette %q not found: %w", fixturePath, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to create recorder: %w", err)
	}

	// Keep tokens out of saved cassettes.
	r.AddSaveFilter(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	})

	return &Recorder{recorder: r, mode: mode}, nil
}

// HTTPClient returns an http.Client routed through the recorder.
func (r *Recorder) HTTPClient() *http.Client {
	return &http.Client{Transport: r.recorder}
}

// IsRecording reports whether the recorder is capturing live traffic.
func (r *Recorder) IsRecording() bool {
	return r.mode == modeRecord
}

// Stop flushes and closes the recorder.
func (r *Recorder) Stop() error {
	return r.recorder.Stop()
}
