package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manifestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestManifestSource(t *testing.T) {
	ctx := context.Background()
	srv := manifestServer(t, http.StatusOK, `{"version":"1.3.0","url":"https://example.com/financehub-1.3.0"}`)

	src := NewManifestSource(srv.Client(), srv.URL, "1.2.9")
	u, err := src.Check(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, Update{Version: "1.3.0", URL: "https://example.com/financehub-1.3.0"}, *u)

	assert.Error(t, src.Activate(ctx, "CLAIM"))
	require.NoError(t, src.Activate(ctx, SkipWaiting))
	select {
	case <-src.Activated():
	default:
		t.Fatal("activation was not signalled")
	}

	// The activated version is now current.
	u, err = src.Check(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Error(t, src.Activate(ctx, SkipWaiting))
}

func TestManifestSourceUpToDate(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, `{"version":"v1.2.0"}`)
	u, err := NewManifestSource(srv.Client(), srv.URL, "v1.2.0").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestManifestSourceErrors(t *testing.T) {
	ctx := context.Background()

	srv := manifestServer(t, http.StatusNotFound, "")
	_, err := NewManifestSource(srv.Client(), srv.URL, "1.0.0").Check(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpectedStatus)

	srv = manifestServer(t, http.StatusOK, "not json")
	_, err = NewManifestSource(srv.Client(), srv.URL, "1.0.0").Check(ctx)
	assert.Error(t, err)
}

func TestNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.1.0", "1.0.0", true},
		{"v2.0.0", "1.9.9", true},
		{"1.0.0", "1.0.0", false},
		{"0.9.0", "1.0.0", false},
		{"1.0.0", "dev", false},
		{"garbage", "1.0.0", false},
		{"", "1.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.latest+" vs "+tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, Newer(tt.latest, tt.current))
		})
	}
}

func TestTerminalPrompter(t *testing.T) {
	var out strings.Builder
	p := &TerminalPrompter{In: strings.NewReader("y\nno\n"), Out: &out}

	ok, err := p.Confirm(context.Background(), "Update?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm(context.Background(), "Again?")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Confirm(context.Background(), "Once more?")
	require.NoError(t, err)
	assert.False(t, ok, "end of input means no")
	assert.Contains(t, out.String(), "Update? [y/N] ")

	ok, err = (&TerminalPrompter{Out: &out, AssumeYes: true}).Confirm(context.Background(), "Sure?")
	require.NoError(t, err)
	assert.True(t, ok)
}
