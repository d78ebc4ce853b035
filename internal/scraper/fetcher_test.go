package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	clock := fixedClock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewFetcher(FetcherConfig{
		UserAgent: "beasiswa-bot/test",
		Timeout:   5 * time.Second,
	}, clock, zap.NewNop())
}

func testSource(urls ...string) Source {
	return Source{
		Name:     "Beasiswa Contoh",
		Category: beasiswa.CategoryPTDalamNegeri,
		URLs:     urls,
		Fallback: Fallback{
			Description:  "Program beasiswa untuk mahasiswa berprestasi",
			Requirements: "WNI, mahasiswa aktif",
			Deadline:     "Sepanjang tahun",
		},
	}
}

func TestFetchExtractsPageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<h1>  Beasiswa   Unggulan 2024  </h1>
			<p>Pendaftaran dibuka untuk seluruh mahasiswa.</p>
		</body></html>`))
	}))
	defer server.Close()

	f := testFetcher(t)
	records := f.Bind(testSource(server.URL)).Fetch(context.Background())

	require.Len(t, records, 1)
	record := records[0]
	require.Equal(t, "Beasiswa Unggulan 2024", record.Name)
	require.Equal(t, "Pendaftaran dibuka untuk seluruh mahasiswa.", record.Description)
	require.Equal(t, beasiswa.CategoryPTDalamNegeri, record.Category)
	require.Equal(t, server.URL, record.SourceURL)
	require.Equal(t, server.URL, record.RegistrationLink)
	require.Equal(t, "2024-03-10 12:00:00", record.UpdatedAt)
}

func TestFetchKeepsFallbackFieldsWhenPageLacksContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div>nothing useful</div></body></html>`))
	}))
	defer server.Close()

	f := testFetcher(t)
	records := f.Bind(testSource(server.URL)).Fetch(context.Background())

	require.Len(t, records, 1)
	record := records[0]
	require.Equal(t, "Beasiswa Contoh", record.Name)
	require.Equal(t, "Program beasiswa untuk mahasiswa berprestasi", record.Description)
	require.Equal(t, "WNI, mahasiswa aktif", record.Requirements)
	require.Equal(t, "Sepanjang tahun", record.Deadline)
}

func TestFetchFallsBackWhenAllURLsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead := server.URL
	server.Close()

	f := testFetcher(t)
	records := f.Bind(testSource(dead)).Fetch(context.Background())

	require.Len(t, records, 1)
	record := records[0]
	require.Equal(t, "Beasiswa Contoh", record.Name)
	require.Equal(t, dead, record.SourceURL)
	require.Equal(t, "Program beasiswa untuk mahasiswa berprestasi", record.Description)
	require.NotEmpty(t, record.UpdatedAt)
}

func TestFetchTriesURLsInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Halaman Cadangan</h1></body></html>`))
	}))
	defer server.Close()

	deadServer := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead := deadServer.URL
	deadServer.Close()

	f := testFetcher(t)
	records := f.Bind(testSource(dead, server.URL)).Fetch(context.Background())

	require.Len(t, records, 1)
	require.Equal(t, "Halaman Cadangan", records[0].Name)
	require.Equal(t, server.URL, records[0].SourceURL)
}

func TestDefaultSourcesCoverEveryCategory(t *testing.T) {
	sources := DefaultSources()
	require.NotEmpty(t, sources)

	seen := make(map[beasiswa.Category]int)
	for _, src := range sources {
		require.NotEmpty(t, src.Name)
		require.NotEmpty(t, src.URLs)
		require.NotEmpty(t, src.Fallback.Description)
		require.NotEmpty(t, src.Fallback.Requirements)
		require.NotEmpty(t, src.Fallback.Deadline)
		seen[src.Category]++
	}
	for _, category := range beasiswa.Categories() {
		require.Positive(t, seen[category], "category %s has no sources", category)
	}
}
