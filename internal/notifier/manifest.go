package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

var (
	errUnexpectedStatus = errors.New("unexpected http status code")
	errNothingWaiting   = errors.New("no update is waiting")
	errUnknownMessage   = errors.New("unknown control message")
)

// Manifest is the release document published next to each build.
type Manifest struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// ManifestSource is an UpdateSource backed by an HTTP JSON manifest.
type ManifestSource struct {
	HTTPClient *http.Client
	URL        string

	mu        sync.Mutex
	current   string
	waiting   *Update
	activated chan struct{}
	once      sync.Once
}

// NewManifestSource polls url and compares against the running version.
// A nil client uses http.DefaultClient.
func NewManifestSource(client *http.Client, url, current string) *ManifestSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &ManifestSource{
		HTTPClient: client,
		URL:        url,
		current:    current,
		activated:  make(chan struct{}),
	}
}

// Check fetches the manifest and returns the update when it is newer than
// the running version, nil otherwise.
func (s *ManifestSource) Check(ctx context.Context) (*Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !Newer(m.Version, s.current) {
		s.waiting = nil
		return nil, nil
	}
	s.waiting = &Update{Version: m.Version, URL: m.URL}
	u := *s.waiting
	return &u, nil
}

// Activate accepts the waiting update. The only message understood is SkipWaiting.
func (s *ManifestSource) Activate(_ context.Context, message string) error {
	if message != SkipWaiting {
		return fmt.Errorf("%w: %q", errUnknownMessage, message)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waiting == nil {
		return errNothingWaiting
	}
	s.current = s.waiting.Version
	s.waiting = nil
	s.once.Do(func() { close(s.activated) })
	return nil
}

// Activated is closed once an update has been activated.
func (s *ManifestSource) Activated() <-chan struct{} {
	return s.activated
}

// Newer reports whether latest is a higher semantic version than current.
// Builds without a release version (such as "dev") never report updates.
func Newer(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if !semver.IsValid(l) || !semver.IsValid(c) {
		return false
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
