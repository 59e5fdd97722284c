package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, maxRetries int) (*Client, *[]time.Duration) {
	t.Helper()
	c := New(Options{
		MaxRetries:     maxRetries,
		BaseDelay:      2 * time.Second,
		RateLimitDelay: 7 * time.Second,
		Timeout:        5 * time.Second,
		HostReqPerSec:  10000,
		HostBurst:      100,
	})

	var sleeps []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return ctx.Err()
	}
	return c, &sleeps
}

func scriptedServer(t *testing.T, statuses []int, body string) (*httptest.Server, *int) {
	t.Helper()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := statuses[len(statuses)-1]
		if calls < len(statuses) {
			status = statuses[calls]
		}
		calls++
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(body))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetFirstTrySucceedsWithoutWaiting(t *testing.T) {
	c, sleeps := newTestClient(t, 5)
	srv, calls := scriptedServer(t, []int{200}, "hello")

	body, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *sleeps)
}

func TestDoRetriesServerErrorsWithGrowingWaits(t *testing.T) {
	c, sleeps := newTestClient(t, 5)
	srv, calls := scriptedServer(t, []int{500, 500, 200}, "ok")

	body, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 3, *calls)

	// first retry is immediate, escalation starts on the second
	assert.Equal(t, []time.Duration{0, 2 * time.Second}, *sleeps)
}

func TestDoRateLimitUsesLongerWait(t *testing.T) {
	c, sleeps := newTestClient(t, 5)
	srv, _ := scriptedServer(t, []int{429, 429, 200}, "ok")

	_, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0, 7 * time.Second}, *sleeps)
}

func TestDoResolvesToErrExhausted(t *testing.T) {
	c, sleeps := newTestClient(t, 3)
	srv, calls := scriptedServer(t, []int{500}, "")

	_, err := c.Get(context.Background(), srv.URL, nil)
	require.ErrorIs(t, err, ErrExhausted)

	// trials 0..3 attempt, trials 0..2 wait in between
	assert.Equal(t, 4, *calls)
	assert.Len(t, *sleeps, 3)
}

func TestDoRetriesTransportErrors(t *testing.T) {
	c, sleeps := newTestClient(t, 1)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused on every attempt

	_, err := c.Get(context.Background(), srv.URL, nil)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, *sleeps, 1)
}

func TestDoMergesHeadersCallWins(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Options{
		Headers:       map[string]string{"user-agent": "default-ua", "accept-language": "en"},
		HostReqPerSec: 10000,
		HostBurst:     100,
	})
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := c.Get(context.Background(), srv.URL, map[string]string{"user-agent": "call-ua"})
	require.NoError(t, err)
	assert.Equal(t, "call-ua", gotUA)
	assert.Equal(t, "en", gotLang)
}

func TestDoHonorsContextCancelDuringWait(t *testing.T) {
	c, _ := newTestClient(t, 5)
	srv, _ := scriptedServer(t, []int{500}, "")

	ctx, cancel := context.WithCancel(context.Background())
	c.sleep = func(sctx context.Context, d time.Duration) error {
		cancel()
		return sctx.Err()
	}

	_, err := c.Get(ctx, srv.URL, nil)
	require.ErrorIs(t, err, context.Canceled)
}
