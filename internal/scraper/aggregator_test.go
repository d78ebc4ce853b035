package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

type stubFetcher struct {
	category beasiswa.Category
	records  []beasiswa.Scholarship
	panics   bool
}

func (s *stubFetcher) Category() beasiswa.Category { return s.category }

func (s *stubFetcher) Fetch(context.Context) []beasiswa.Scholarship {
	if s.panics {
		panic("fetcher blew up")
	}
	return s.records
}

func record(name string, category beasiswa.Category) beasiswa.Scholarship {
	return beasiswa.Scholarship{Name: name, Category: category}
}

func TestRunCategoryIsolatesPanics(t *testing.T) {
	fetchers := []beasiswa.SourceFetcher{
		&stubFetcher{category: beasiswa.CategoryDomestik, records: []beasiswa.Scholarship{record("PIP", beasiswa.CategoryDomestik)}},
		&stubFetcher{category: beasiswa.CategoryDomestik, panics: true},
		&stubFetcher{category: beasiswa.CategoryDomestik, records: []beasiswa.Scholarship{record("GrabScholar", beasiswa.CategoryDomestik)}},
	}
	a := NewAggregator(fetchers, AggregatorConfig{}, zap.NewNop())

	records := a.RunCategory(context.Background(), beasiswa.CategoryDomestik)
	require.Len(t, records, 2)
	require.Equal(t, "PIP", records[0].Name)
	require.Equal(t, "GrabScholar", records[1].Name)
}

func TestRunCategoryPreservesOrder(t *testing.T) {
	fetchers := []beasiswa.SourceFetcher{
		&stubFetcher{category: beasiswa.CategoryPTLuarNegeri, records: []beasiswa.Scholarship{record("LPDP", beasiswa.CategoryPTLuarNegeri)}},
		&stubFetcher{category: beasiswa.CategoryPTLuarNegeri, records: []beasiswa.Scholarship{record("Chevening", beasiswa.CategoryPTLuarNegeri)}},
	}
	a := NewAggregator(fetchers, AggregatorConfig{}, zap.NewNop())

	records := a.RunCategory(context.Background(), beasiswa.CategoryPTLuarNegeri)
	require.Equal(t, []string{"LPDP", "Chevening"}, []string{records[0].Name, records[1].Name})
}

func TestRunAllConcatenatesCategoriesInOrder(t *testing.T) {
	fetchers := []beasiswa.SourceFetcher{
		&stubFetcher{category: beasiswa.CategoryPTLuarNegeri, records: []beasiswa.Scholarship{record("MEXT", beasiswa.CategoryPTLuarNegeri)}},
		&stubFetcher{category: beasiswa.CategoryDomestik, records: []beasiswa.Scholarship{record("PIP", beasiswa.CategoryDomestik)}},
		&stubFetcher{category: beasiswa.CategoryPTDalamNegeri, records: []beasiswa.Scholarship{record("KIP Kuliah", beasiswa.CategoryPTDalamNegeri)}},
	}
	a := NewAggregator(fetchers, AggregatorConfig{}, zap.NewNop())

	records := a.RunAll(context.Background())
	require.Len(t, records, 3)
	// Categories run in their fixed order regardless of registration order.
	require.Equal(t, "PIP", records[0].Name)
	require.Equal(t, "KIP Kuliah", records[1].Name)
	require.Equal(t, "MEXT", records[2].Name)
}

func TestRunAllStopsOnContextCancel(t *testing.T) {
	fetchers := []beasiswa.SourceFetcher{
		&stubFetcher{category: beasiswa.CategoryDomestik, records: []beasiswa.Scholarship{record("PIP", beasiswa.CategoryDomestik)}},
	}
	a := NewAggregator(fetchers, AggregatorConfig{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := a.RunAll(ctx)
	require.Empty(t, records)
}
