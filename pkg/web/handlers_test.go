package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igdebugger/pkg/errors"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/proxyapi"
)

type stubFetcher struct {
	mu    sync.Mutex
	data  json.RawMessage
	err   error
	calls []string
}

func (f *stubFetcher) Fetch(ctx context.Context, ep proxyapi.Endpoint, raw string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ep.String()+":"+raw)
	return f.data, f.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestServer(t *testing.T, f *stubFetcher) (*httptest.Server, *http.Client) {
	t.Helper()
	h, err := NewHandler(f, Options{Logger: logger.NewTestLogger(), SessionLimit: 8})
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(h))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHealthz(t *testing.T) {
	server, client := newTestServer(t, &stubFetcher{})

	resp, err := client.Get(server.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
}

func TestIndexRendersEmptyPanel(t *testing.T) {
	server, client := newTestServer(t, &stubFetcher{})

	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Instagram API Debugger")
	assert.Contains(t, body, `placeholder="Instagram username or link"`)
	assert.Contains(t, body, "Test API")
	assert.Contains(t, body, `value="profile" class="active"`)
	assert.NotContains(t, body, "API Response:")
}

func TestIndexPrefillsFromQuery(t *testing.T) {
	server, client := newTestServer(t, &stubFetcher{})

	resp, err := client.Get(server.URL + "/?username=alice&endpoint=reels")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, `value="alice"`)
	assert.Contains(t, body, `value="reels" class="active"`)
}

func TestFetchFlowKeepsSessionState(t *testing.T) {
	f := &stubFetcher{data: json.RawMessage(`{"user_id":"42","recent_posts":[{"thumbnail_src":"https://cdn/p.jpg"},{}]}`)}
	server, client := newTestServer(t, f)

	resp, err := client.PostForm(server.URL+"/fetch", url.Values{
		"username": {"https://instagram.com/alice/"},
		"endpoint": {"profile"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"profile:https://instagram.com/alice/"}, f.calls)
	assert.Contains(t, body, "API Response:")
	assert.Contains(t, body, "Recent Posts:")
	assert.Contains(t, body, "Count: 2")
	assert.Contains(t, body, `src="https://cdn/p.jpg"`)
	assert.Contains(t, body, `alt="Post thumbnail"`)
	assert.Contains(t, body, "Missing image URL")
	assert.Contains(t, body, "Full Response:")

	// Switching tabs keeps the stored response
	resp, err = client.PostForm(server.URL+"/select", url.Values{
		"username": {"https://instagram.com/alice/"},
		"select":   {"stories"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)

	assert.Contains(t, body, `value="stories" class="active"`)
	assert.Contains(t, body, "No stories found in response")
	assert.Contains(t, body, "API Response:")
	assert.Len(t, f.calls, 1)
}

// gatedFetcher blocks the first call until release is closed; later calls
// answer immediately
type gatedFetcher struct {
	mu       sync.Mutex
	calls    []string
	started  chan struct{}
	release  chan struct{}
	response map[string]json.RawMessage
}

func (f *gatedFetcher) Fetch(ctx context.Context, ep proxyapi.Endpoint, raw string) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, raw)
	first := len(f.calls) == 1
	f.mu.Unlock()

	if first {
		close(f.started)
		<-f.release
	}
	return f.response[raw], nil
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestLaterFetchSupersedesInFlightFetch(t *testing.T) {
	f := &gatedFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		response: map[string]json.RawMessage{
			"alice": json.RawMessage(`{"marker":"first-response"}`),
			"bob":   json.RawMessage(`{"marker":"second-response"}`),
		},
	}
	h, err := NewHandler(f, Options{Logger: logger.NewTestLogger(), SessionLimit: 8})
	require.NoError(t, err)
	server := httptest.NewServer(NewRouter(h))
	t.Cleanup(server.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	// Establish the session cookie before the concurrent posts
	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	readBody(t, resp)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		resp, err := client.PostForm(server.URL+"/fetch", url.Values{"username": {"alice"}})
		if err == nil {
			resp.Body.Close()
		}
	}()
	select {
	case <-f.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first fetch never started")
	}

	resp, err = client.PostForm(server.URL+"/fetch", url.Values{"username": {"bob"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, 2, f.callCount())
	assert.Contains(t, body, "second-response")
	assert.Contains(t, body, `value="bob"`)

	close(f.release)
	select {
	case <-firstDone:
	case <-time.After(5 * time.Second):
		t.Fatal("first fetch never finished")
	}

	resp, err = client.Get(server.URL + "/")
	require.NoError(t, err)
	body = readBody(t, resp)

	assert.Contains(t, body, "second-response")
	assert.NotContains(t, body, "first-response")
	assert.Contains(t, body, `value="bob"`)
	assert.Contains(t, body, "Test API")
}

func TestFetchFailureShowsBanner(t *testing.T) {
	f := &stubFetcher{err: errors.New(errors.ErrorTypeUpstreamHTTP, "user <not> found")}
	server, client := newTestServer(t, f)

	resp, err := client.PostForm(server.URL+"/fetch", url.Values{"username": {"ghost"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, `role="alert">Failed to fetch data: user &lt;not&gt; found</div>`)
	assert.NotContains(t, body, "user <not> found")
}

func TestFetchWithBlankInputDoesNothing(t *testing.T) {
	f := &stubFetcher{}
	server, client := newTestServer(t, f)

	resp, err := client.PostForm(server.URL+"/fetch", url.Values{"username": {"   "}})
	require.NoError(t, err)
	readBody(t, resp)

	assert.Zero(t, f.callCount())
}

func TestSessionsAreIsolated(t *testing.T) {
	f := &stubFetcher{data: json.RawMessage(`{"reels":[]}`)}
	server, client := newTestServer(t, f)

	resp, err := client.PostForm(server.URL+"/fetch", url.Values{"username": {"alice"}, "endpoint": {"reels"}})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "No reels found in response")

	// A client without the cookie gets a fresh panel
	resp, err = http.Get(server.URL + "/")
	require.NoError(t, err)
	assert.NotContains(t, readBody(t, resp), "API Response:")
}

func TestUpstreamStringsAreEscaped(t *testing.T) {
	f := &stubFetcher{data: json.RawMessage(`{"stories":[{"image_url":"javascript:alert(1)"}],"x":"<script>"}`)}
	server, client := newTestServer(t, f)

	resp, err := client.PostForm(server.URL+"/fetch", url.Values{"username": {"alice"}, "endpoint": {"stories"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, `src="javascript:`)
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestAPIFetch(t *testing.T) {
	t.Run("success passes upstream JSON through", func(t *testing.T) {
		f := &stubFetcher{data: json.RawMessage(`{"reels":[{"thumbnail_url":"a"}]}`)}
		server, client := newTestServer(t, f)

		resp, err := client.Get(server.URL + "/api/fetch?username=alice&endpoint=reels")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"reels":[{"thumbnail_url":"a"}]}`, readBody(t, resp))
		assert.Equal(t, []string{"reels:alice"}, f.calls)
	})

	t.Run("failure is 502 with message", func(t *testing.T) {
		e := errors.New(errors.ErrorTypeUpstreamHTTP, "Error: 503")
		e.Code = 503
		server, client := newTestServer(t, &stubFetcher{err: e})

		resp, err := client.Get(server.URL + "/api/fetch?username=alice")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Failed to fetch data: Error: 503","type":"upstream_http","status":503}`, readBody(t, resp))
	})

	t.Run("missing username", func(t *testing.T) {
		f := &stubFetcher{}
		server, client := newTestServer(t, f)

		resp, err := client.Get(server.URL + "/api/fetch?username=%20")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"message":"username is required","type":"input"}`, readBody(t, resp))
		assert.Zero(t, f.callCount())
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		server, client := newTestServer(t, &stubFetcher{})

		resp, err := client.Get(server.URL + "/api/fetch?username=alice&endpoint=highlights")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "unknown endpoint")
	})
}

func TestSessionStoreEvictsOldest(t *testing.T) {
	store, err := newSessionStore(2, proxyapi.EndpointProfile)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		store.load(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, rec.Result().Cookies(), 1)
	}
	assert.Equal(t, 2, store.len())
}

func TestSessionStoreReusesKnownCookie(t *testing.T) {
	store, err := newSessionStore(4, proxyapi.EndpointReels)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	first := store.load(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, proxyapi.EndpointReels, first.state.Endpoint)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	second := store.load(rec, req)

	assert.Same(t, first, second)
	assert.Empty(t, rec.Result().Cookies())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h, err := NewHandler(&stubFetcher{}, Options{Logger: logger.NewNopLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, NewRouter(h), logger.NewNopLogger()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	log := logger.NewTestLogger()
	handler := requestIDMiddleware(recoverMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "internal server error"))
	assert.True(t, log.HasMessage("panic recovered"))
}
