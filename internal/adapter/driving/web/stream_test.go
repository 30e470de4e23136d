package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

type streamEvent struct {
	Loading       bool   `json:"loading"`
	Authenticated bool   `json:"authenticated"`
	Redirect      string `json:"redirect"`
}

// readSessionEvents opens the stream with token and collects n events.
func readSessionEvents(t *testing.T, app *testApp, token string, n int) ([]streamEvent, *http.Response) {
	t.Helper()

	server := httptest.NewServer(app.handler)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/session/stream", nil)
	require.NoError(t, err)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: model.TokenKey, Value: token})
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var events []streamEvent
	scanner := bufio.NewScanner(resp.Body)
	for len(events) < n && scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var ev streamEvent
		require.NoError(t, json.Unmarshal([]byte(data), &ev))
		events = append(events, ev)
	}
	require.Len(t, events, n)
	return events, resp
}

func TestSessionStream_Authenticated(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signedIn(t)

	events, resp := readSessionEvents(t, app, token, 2)

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, streamEvent{Loading: true, Authenticated: true}, events[0])
	assert.Equal(t, streamEvent{Loading: false, Authenticated: true}, events[1])
}

func TestSessionStream_RedirectsAfterGate(t *testing.T) {
	app := newTestApp(t)

	events, _ := readSessionEvents(t, app, "", 2)

	assert.Equal(t, streamEvent{Loading: true}, events[0], "no redirect while loading")
	assert.Equal(t, streamEvent{Redirect: "/auth/signin"}, events[1])
}

func TestSessionStream_PurgesExpiredToken(t *testing.T) {
	app := newTestApp(t)

	events, resp := readSessionEvents(t, app, expiredToken, 1)

	assert.False(t, events[0].Authenticated)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == model.TokenKey && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
