// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer answers every request with status/body and records what
// it received.
type recordingServer struct {
	*httptest.Server
	path        string
	body        map[string]any
	contentType string
}

func newRecordingServer(t *testing.T, status int, body string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		rs.path = r.URL.Path
		rs.contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &rs.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func TestClient_Query(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{
		"basic": {"area": "Wakad", "city": "Pune", "summary": "Wakad is growing"},
		"chart": {"years": [2021, 2022], "price": [7000.5, 7400], "demand": [120]},
		"table_sample": [{"year": 2021, "final location": "wakad"}],
		"table_full": [{"year": 2021, "final location": "wakad"}, {"year": 2022, "final location": "wakad"}]
	}`)

	client := NewClient(srv.URL + "/")
	resp, err := client.Query(context.Background(), "wakad")
	require.NoError(t, err)

	assert.Equal(t, PathQuery, srv.path)
	assert.Equal(t, "application/json", srv.contentType)
	assert.Equal(t, map[string]any{"query": "wakad"}, srv.body)

	require.NotNil(t, resp.Basic)
	assert.Equal(t, "Wakad is growing", resp.Basic.Summary)
	require.NotNil(t, resp.Chart)
	assert.Len(t, resp.Chart.Years, 2)
	assert.Len(t, resp.Chart.Demand, 1)
	assert.Len(t, resp.TableFull, 2)
	assert.Equal(t, []string{"year", "final location"}, resp.TableFull[0].Keys)
}

func TestClient_Compare(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{
		"summary": "Comparison generated",
		"comparison": {"pricing": {"wakad": 9000, "baner": 11000}, "city": {"wakad": "Pune", "baner": "Pune"}}
	}`)

	resp, err := NewClient(srv.URL).Compare(context.Background(), []string{"wakad", "baner"})
	require.NoError(t, err)

	assert.Equal(t, PathCompare, srv.path)
	assert.Equal(t, []any{"wakad", "baner"}, srv.body["areas"])
	assert.Equal(t, "Comparison generated", resp.Summary)
	assert.Equal(t, []string{"pricing", "city"}, resp.Comparison.Keys)
}

func TestClient_PriceGrowth(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{"2023": 8100, "2021": 7000, "2022": 7600, "summary": "Up 15%"}`)

	resp, err := NewClient(srv.URL).PriceGrowth(context.Background(), "wakad")
	require.NoError(t, err)

	assert.Equal(t, PathPriceGrowth, srv.path)
	assert.Equal(t, "wakad", srv.body["area"])
	assert.Equal(t, "Up 15%", resp.Summary)
	require.Len(t, resp.Points, 3)
	assert.Equal(t, "2021", resp.Points[0].Year)
	assert.Equal(t, "2023", resp.Points[2].Year)
}

func TestClient_StatusError(t *testing.T) {
	srv := newRecordingServer(t, http.StatusBadRequest, `{"error": "Please provide two or more areas in 'areas' list."}`)

	_, err := NewClient(srv.URL).Compare(context.Background(), []string{"wakad"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadStatus))
	assert.False(t, errors.Is(err, ErrConnection))

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusBadRequest, ce.Status)
	assert.Contains(t, ce.Error(), "two or more areas")
}

func TestClient_DecodeError(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `<html>oops</html>`)

	_, err := NewClient(srv.URL).Query(context.Background(), "wakad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Query(context.Background(), "wakad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Query(context.Background(), "wakad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).Query(ctx, "wakad")
	require.Error(t, err)
	var ce *ClientError
	assert.True(t, errors.As(err, &ce))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "timeout", ErrTypeTimeout.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}
