package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/common"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

type stubLLM struct {
	response   string
	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, nil
}

func testReports() []model.Report {
	return []model.Report{
		{
			Filename: "a.pdf",
			Wellbore: "15/9-19 A",
			Period:   "2024-03-15 00:00 - 2024-03-16 00:00",
			Operator: "Equinor Energy",
			DepthMD:  common.Float(2800),
		},
		{
			Filename: "b.pdf",
			Wellbore: "15/9-F-10",
			Operator: "Equinor Energy",
		},
		{Filename: "bad.pdf", Error: "document has no text layer"},
	}
}

func TestAddReportsSkipsFailed(t *testing.T) {
	ix := NewIndex(&stubEmbedder{}, nil, nil, "")
	require.NoError(t, ix.AddReports(context.Background(), testReports()))

	stats := ix.Statistics()
	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Equal(t, 2, stats.UniqueWellbores)
	assert.Equal(t, []string{"15/9-19 A", "15/9-F-10"}, stats.Wellbores)
}

func TestEmbedPrefersCache(t *testing.T) {
	reports := testReports()[:1]
	cache := NewMemoryCache()
	cache.Put(CacheKey(DocumentText(&reports[0])), []float32{0.5, 0.5})

	// The embedder always errors; a cache hit means it is never consulted.
	emb := &stubEmbedder{err: errors.New("embedding service down")}
	ix := NewIndex(emb, cache, nil, "")
	require.NoError(t, ix.AddReports(context.Background(), reports))
	assert.Equal(t, 0, emb.calls)
}

func TestSearchRanksByCosineDistance(t *testing.T) {
	reports := testReports()[:2]
	emb := &stubEmbedder{vectors: map[string][]float32{
		DocumentText(&reports[0]): {1, 0, 0},
		DocumentText(&reports[1]): {0, 1, 0},
		"query":                   {0.9, 0.1, 0},
	}}
	ix := NewIndex(emb, nil, nil, "")
	require.NoError(t, ix.AddReports(context.Background(), reports))

	results, err := ix.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "15/9-19 A", results[0].Metadata.Wellbore)
	assert.Less(t, results[0].Distance, results[1].Distance)

	// n caps the result count.
	results, err = ix.Search(context.Background(), "query", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := NewIndex(&stubEmbedder{err: errors.New("unreachable")}, nil, nil, "")
	results, err := ix.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnswerQuestion(t *testing.T) {
	reports := testReports()[:2]
	gen := &stubLLM{response: "  Drilling reached 2800m.  "}
	ix := NewIndex(&stubEmbedder{}, nil, gen, "")
	require.NoError(t, ix.AddReports(context.Background(), reports))

	answer, err := ix.AnswerQuestion(context.Background(), "How deep is the well?", 2)
	require.NoError(t, err)

	assert.Equal(t, "How deep is the well?", answer.Question)
	assert.Equal(t, "Drilling reached 2800m.", answer.Answer)
	assert.Equal(t, 2, answer.ContextUsed)
	assert.Len(t, answer.Sources, 2)

	assert.Contains(t, gen.lastPrompt, "How deep is the well?")
	assert.Contains(t, gen.lastPrompt, "--- Document 1 ---")
}

func TestFilterBy(t *testing.T) {
	ix := NewIndex(&stubEmbedder{}, nil, nil, "")
	require.NoError(t, ix.AddReports(context.Background(), testReports()))

	hits := ix.FilterBy(map[string]string{"wellbore": "15/9-F-10"}, 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "b.pdf", hits[0].Metadata.Filename)

	hits = ix.FilterBy(map[string]string{"operator": "Equinor Energy"}, 1)
	assert.Len(t, hits, 1)

	assert.Empty(t, ix.FilterBy(map[string]string{"wellbore": "nope"}, 0))
}

func TestDocumentText(t *testing.T) {
	r := model.Report{
		Wellbore: "15/9-19 A",
		Operator: "Equinor Energy",
		DepthMD:  common.Float(2800),
		Summary:  model.ActivitySummary{Activities24h: "Drilled ahead to 2800m"},
		Operations: []model.Operation{
			{StartTime: "08:00", EndTime: "10:30", Depth: common.Float(2800), Activity: "drilling", State: model.StateOK},
		},
		GasReadings: []model.GasReading{
			{Depth: common.Float(2795), GasPercentage: common.Float(1.8), C1PPM: common.Float(9000)},
			{Depth: common.Float(2600), GasPercentage: common.Float(0.4)},
		},
	}
	text := DocumentText(&r)

	assert.Contains(t, text, "Wellbore: 15/9-19 A")
	assert.Contains(t, text, "Current Depth MD: 2800m")
	assert.Contains(t, text, "Drilled ahead to 2800m")
	assert.Contains(t, text, "08:00-10:30: drilling at 2800m - ok")

	// Only readings above the floor appear.
	assert.Contains(t, text, "2795m: 1.8% (C1: 9000 ppm)")
	assert.False(t, strings.Contains(text, "0.4%"))
}

func TestCacheKeyIsStable(t *testing.T) {
	assert.Equal(t, CacheKey("hello"), CacheKey("hello"))
	assert.NotEqual(t, CacheKey("hello"), CacheKey("world"))
}
