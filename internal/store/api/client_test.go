package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, 5*time.Second, zap.NewNop())
}

func TestClearScholarships(t *testing.T) {
	var gotMethod, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query().Get("action")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"cleared"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).ClearScholarships(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "clear", gotQuery)
}

func TestClearScholarshipsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).ClearScholarships(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestSaveScholarships(t *testing.T) {
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/beasiswa", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	list := []beasiswa.Scholarship{{
		Name:     "LPDP",
		Category: beasiswa.CategoryPTLuarNegeri,
	}}
	err := newTestClient(server.URL).SaveScholarships(context.Background(), list)
	require.NoError(t, err)

	require.JSONEq(t, `true`, string(gotBody["clearFirst"]))
	var sent []beasiswa.Scholarship
	require.NoError(t, json.Unmarshal(gotBody["beasiswaList"], &sent))
	require.Len(t, sent, 1)
	require.Equal(t, "LPDP", sent[0].Name)
}

func TestSaveScholarshipsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient(server.URL).SaveScholarships(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestListScholarshipsPassesPayloadThrough(t *testing.T) {
	const payload = `{"data":[{"nama_beasiswa":"KIP Kuliah","kategori":"Perguruan Tinggi Dalam Negeri"}]}`
	var gotKategori string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKategori = r.URL.Query().Get("kategori")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL).ListScholarships(context.Background(), "Perguruan Tinggi Dalam Negeri")
	require.NoError(t, err)
	require.JSONEq(t, payload, string(body))
	require.Equal(t, "Perguruan Tinggi Dalam Negeri", gotKategori)
}

func TestListScholarshipsOmitsEmptyFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasFilter := r.URL.Query()["kategori"]
		require.False(t, hasFilter)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListScholarships(context.Background(), "")
	require.NoError(t, err)
}

func TestCountScholarships(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{},{},{}]}`))
	}))
	defer server.Close()

	count, err := newTestClient(server.URL).CountScholarships(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestSaveLogs(t *testing.T) {
	var gotPath string
	var gotBody map[string][]beasiswa.LogEntry
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	entries := []beasiswa.LogEntry{{
		Timestamp: time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC),
		Message:   "[START] Memulai proses scraping...",
		Level:     beasiswa.LogLevelInfo,
	}}
	err := newTestClient(server.URL).SaveLogs(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, "/api/logs", gotPath)
	require.Len(t, gotBody["logs"], 1)
	require.Equal(t, beasiswa.LogLevelInfo, gotBody["logs"][0].Level)
}

func TestClearLogsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := newTestClient(server.URL).ClearLogs(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 502")
}
