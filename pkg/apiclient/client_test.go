package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
)

type reading struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

func TestDoSuccessDecodesBody(t *testing.T) {
	var captured *http.Request
	var reqCtx context.Context
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		reqCtx = req.Context()
		return jsonResponse(http.StatusOK, `{"temperature":28.5,"description":"clear sky"}`), nil
	}))

	result := Do[reading](context.Background(), client, "/api/weather?lat=1&lon=2", RequestOptions{})

	require.True(t, result.OK())
	data, ok := result.Data()
	require.True(t, ok)
	assert.Equal(t, reading{Temperature: 28.5, Description: "clear sky"}, data)
	assert.Nil(t, result.Failure())
	assert.Empty(t, result.ErrorMessage())

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "http://farm.test/api/weather?lat=1&lon=2", captured.URL.String())
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.Equal(t, "test-agent/1", captured.Header.Get("User-Agent"))
	assert.NotEmpty(t, captured.Header.Get(requestIDHeader))

	// the per-call timer must be released once Do returns
	require.Error(t, reqCtx.Err())
	assert.ErrorIs(t, reqCtx.Err(), context.Canceled)
}

func TestDoApplicationFailureUsesBodyMessage(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"Not found"}`), nil
	}))

	result := Do[reading](context.Background(), client, "/api/crops/missing", RequestOptions{Method: http.MethodPut})

	require.False(t, result.OK())
	failure := result.Failure()
	require.NotNil(t, failure)
	assert.Equal(t, "Not found", result.ErrorMessage())
	assert.Equal(t, pkgerrors.CodeApplication, failure.Code)
	assert.Equal(t, http.StatusNotFound, failure.Status)
	assert.Equal(t, map[string]any{"message": "Not found"}, failure.Body)

	var decoded struct {
		Message string `json:"message"`
	}
	require.NoError(t, failure.DecodeBody(&decoded))
	assert.Equal(t, "Not found", decoded.Message)

	_, ok := result.Data()
	assert.False(t, ok)
}

func TestDoApplicationFailureFallsBackToStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody any
	}{
		{name: "no message field", status: http.StatusInternalServerError, body: `{"detail":"boom"}`, wantBody: map[string]any{"detail": "boom"}},
		{name: "empty message", status: http.StatusBadRequest, body: `{"message":""}`, wantBody: map[string]any{"message": ""}},
		{name: "unparseable body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantBody: nil},
		{name: "empty body", status: http.StatusServiceUnavailable, body: ``, wantBody: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			}))

			result := Do[reading](context.Background(), client, "/api/advice", RequestOptions{})

			require.False(t, result.OK())
			assert.Equal(t, fmt.Sprintf("HTTP Error: %d", tt.status), result.ErrorMessage())
			assert.Equal(t, tt.wantBody, result.Failure().Body)
			assert.Equal(t, tt.status, result.Failure().Status)
		})
	}
}

func TestDoTimeoutAbortsInFlightCall(t *testing.T) {
	aborted := make(chan struct{})
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		close(aborted)
		return nil, req.Context().Err()
	}), WithTimeout(30*time.Millisecond))

	result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

	require.False(t, result.OK())
	failure := result.Failure()
	assert.Equal(t, pkgerrors.CodeTimeout, failure.Code)
	assert.True(t, failure.Timeout())
	assert.True(t, failure.Retryable())
	assert.Equal(t, "request timed out after 30ms", failure.Message)
	assert.ErrorIs(t, failure, context.DeadlineExceeded)

	select {
	case <-aborted:
	case <-time.After(time.Second):
		t.Fatal("in-flight call was not aborted")
	}
}

func TestDoTimeoutDuringBodyRead(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"temperature":`))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	endpoints, err := NewEndpoints(ModeDevelopment, srv.URL, 50*time.Millisecond)
	require.NoError(t, err)
	client, err := New(endpoints, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeTimeout, result.Failure().Code)
}

func TestDoTransportFailureMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "error without message", err: errors.New(""), message: "Unknown error occurred"},
		{name: "network unreachable", err: errors.New("connection refused"), message: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return nil, tt.err
			}))

			result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

			require.False(t, result.OK())
			assert.Equal(t, tt.message, result.ErrorMessage())
			assert.Equal(t, pkgerrors.CodeTransport, result.Failure().Code)
			assert.Nil(t, result.Failure().Body)
			assert.Zero(t, result.Failure().Status)
		})
	}
}

func TestDoCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		cancel()
		<-req.Context().Done()
		return nil, req.Context().Err()
	}))

	result := Do[reading](ctx, client, "/api/weather", RequestOptions{})

	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeCanceled, result.Failure().Code)
	assert.False(t, result.Failure().Timeout())
}

func TestDoMalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"temperature":"hot"`), nil
	}))

	result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeDecode, result.Failure().Code)
	assert.NotEmpty(t, result.ErrorMessage())
}

func TestDoEmptySuccessBodyIsDecodeFailure(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "200 empty", status: http.StatusOK, body: ""},
		{name: "200 whitespace", status: http.StatusOK, body: "  \n"},
		{name: "204", status: http.StatusNoContent, body: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tc.status, tc.body), nil
			}))

			result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

			require.False(t, result.OK())
			assert.Equal(t, pkgerrors.CodeDecode, result.Failure().Code)
			assert.Equal(t, "unexpected end of JSON input", result.ErrorMessage())
			assert.Zero(t, result.Failure().Status)
		})
	}
}

func TestDoResponseSizeLimit(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"description":"`+strings.Repeat("x", 64)+`"}`), nil
	}), WithMaxResponseBytes(16))

	result := Do[reading](context.Background(), client, "/api/weather", RequestOptions{})

	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeDecode, result.Failure().Code)
}

func TestDoEncodesBodyAndMergesHeaders(t *testing.T) {
	var body map[string]any
	var headers http.Header
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		headers = req.Header.Clone()
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return jsonResponse(http.StatusOK, `{"temperature":1}`), nil
	}))

	result := Do[reading](context.Background(), client, "/api/crops", RequestOptions{
		Method:  "post",
		Body:    map[string]any{"name": "Wheat", "stage": "planted"},
		Headers: map[string]string{"Content-Type": "application/merge-patch+json", "X-Device": "android"},
	})

	require.True(t, result.OK())
	assert.Equal(t, map[string]any{"name": "Wheat", "stage": "planted"}, body)
	assert.Equal(t, "application/merge-patch+json", headers.Get("Content-Type"))
	assert.Equal(t, "android", headers.Get("X-Device"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
}

func TestDoUnencodableBody(t *testing.T) {
	called := false
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	}))

	result := Do[reading](context.Background(), client, "/api/crops", RequestOptions{Method: http.MethodPost, Body: make(chan int)})

	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeValidation, result.Failure().Code)
	assert.False(t, called)
}

func TestDoConcurrentCallsAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if strings.HasSuffix(id, "7") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprintf(w, `{"message":"missing %s"}`, id)
			return
		}
		time.Sleep(5 * time.Millisecond)
		_, _ = fmt.Fprintf(w, `{"description":"reading %s"}`, id)
	}))
	defer srv.Close()

	endpoints, err := NewEndpoints(ModeDevelopment, srv.URL, time.Second)
	require.NoError(t, err)
	client, err := New(endpoints, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	const calls = 24
	results := make([]Result[reading], calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Do[reading](context.Background(), client, fmt.Sprintf("/api/weather?id=%d", i), RequestOptions{})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if strings.HasSuffix(fmt.Sprint(i), "7") {
			require.False(t, result.OK(), "call %d", i)
			assert.Equal(t, fmt.Sprintf("missing %d", i), result.ErrorMessage())
			continue
		}
		data, ok := result.Data()
		require.True(t, ok, "call %d: %s", i, result.ErrorMessage())
		assert.Equal(t, fmt.Sprintf("reading %d", i), data.Description)
	}
}

func TestDoReportsObservations(t *testing.T) {
	obs := &recordingObserver{}
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodPut {
			return jsonResponse(http.StatusNotFound, `{"message":"Not found"}`), nil
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	}), WithObserver(obs))

	Do[reading](context.Background(), client, "/api/weather?lat=1", RequestOptions{})
	Do[reading](context.Background(), client, "/api/crops/9", RequestOptions{Method: http.MethodPut, Operation: "crops.update"})

	require.Len(t, obs.seen, 2)
	assert.Equal(t, "/api/weather", obs.seen[0].Operation)
	assert.Equal(t, http.StatusOK, obs.seen[0].Status)
	assert.Empty(t, obs.seen[0].Code)
	assert.Equal(t, "crops.update", obs.seen[1].Operation)
	assert.Equal(t, pkgerrors.CodeApplication, obs.seen[1].Code)
	assert.Equal(t, http.StatusNotFound, obs.seen[1].Status)
}

func TestDoNilClient(t *testing.T) {
	result := Do[reading](context.Background(), nil, "/api/weather", RequestOptions{})
	require.False(t, result.OK())
	assert.Equal(t, "api client not configured", result.ErrorMessage())
}

func TestDoRecoversTransportPanic(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		panic("transport exploded")
	}))

	var result Result[reading]
	require.NotPanics(t, func() {
		result = Do[reading](context.Background(), client, "/api/weather", RequestOptions{})
	})
	require.False(t, result.OK())
	assert.Equal(t, pkgerrors.CodeInternal, result.Failure().Code)
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []Observation
}

func (r *recordingObserver) ObserveRequest(_ context.Context, obs Observation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, obs)
}

func newTestClient(t *testing.T, rt http.RoundTripper, opts ...Option) *Client {
	t.Helper()
	endpoints, err := NewEndpoints(ModeDevelopment, "http://farm.test", time.Second)
	require.NoError(t, err)
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt}), WithUserAgent("test-agent/1")}, opts...)
	client, err := New(endpoints, opts...)
	require.NoError(t, err)
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
