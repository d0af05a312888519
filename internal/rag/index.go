// Package rag maintains a vector index over report documents and answers
// questions with retrieved context. Nearest-neighbor search is cosine over
// in-memory embeddings; the embedding service and cache are injected.
package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/llm"
)

// DefaultQuestionPrompt has two slots: retrieved context, then the question.
const DefaultQuestionPrompt = `Answer the question below using the daily drilling report context.

Context: %s
Question: %s

Answer:`

// Gas readings above this percentage are considered notable enough for the
// searchable document text.
const docGasFloor = 1.0

type Metadata struct {
	Wellbore string   `json:"wellbore"`
	Period   string   `json:"period"`
	Operator string   `json:"operator"`
	DepthMD  *float64 `json:"depth_md"`
	Filename string   `json:"filename"`
}

type Document struct {
	ID        string
	Text      string
	Metadata  Metadata
	Embedding []float32
}

type SearchResult struct {
	ID       string   `json:"id"`
	Document string   `json:"document"`
	Metadata Metadata `json:"metadata"`
	Distance float64  `json:"distance"`
}

type Answer struct {
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	Sources     []Metadata `json:"sources"`
	ContextUsed int        `json:"context_used"`
}

type Statistics struct {
	TotalDocuments  int      `json:"total_documents"`
	UniqueWellbores int      `json:"unique_wellbores"`
	Wellbores       []string `json:"wellbores"`
}

type Index struct {
	Embedder       llm.EmbedderClient
	Cache          Cache
	LLM            llm.LLMClient
	QuestionPrompt string

	docs []Document
}

func NewIndex(embedder llm.EmbedderClient, cache Cache, llmClient llm.LLMClient, questionPrompt string) *Index {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if questionPrompt == "" {
		questionPrompt = DefaultQuestionPrompt
	}
	return &Index{
		Embedder:       embedder,
		Cache:          cache,
		LLM:            llmClient,
		QuestionPrompt: questionPrompt,
	}
}

// AddReports embeds and indexes every successful report.
func (ix *Index) AddReports(ctx context.Context, reports []model.Report) error {
	for i := range reports {
		r := &reports[i]
		if r.Failed() {
			continue
		}
		text := DocumentText(r)
		vec, err := ix.embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", r.Filename, err)
		}
		ix.docs = append(ix.docs, Document{
			ID:   fmt.Sprintf("ddr_%d_%s", len(ix.docs), r.Filename),
			Text: text,
			Metadata: Metadata{
				Wellbore: r.Wellbore,
				Period:   r.Period,
				Operator: r.Operator,
				DepthMD:  r.DepthMD,
				Filename: r.Filename,
			},
			Embedding: vec,
		})
	}
	return nil
}

func (ix *Index) embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(text)
	if vec, ok := ix.Cache.Get(key); ok {
		return vec, nil
	}
	vec, err := ix.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	ix.Cache.Put(key, vec)
	return vec, nil
}

// Search returns the n nearest documents by cosine distance.
func (ix *Index) Search(ctx context.Context, query string, n int) ([]SearchResult, error) {
	if len(ix.docs) == 0 {
		return []SearchResult{}, nil
	}
	queryVec, err := ix.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results := make([]SearchResult, 0, len(ix.docs))
	for _, doc := range ix.docs {
		results = append(results, SearchResult{
			ID:       doc.ID,
			Document: doc.Text,
			Metadata: doc.Metadata,
			Distance: 1 - cosine(queryVec, doc.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if n > 0 && n < len(results) {
		results = results[:n]
	}
	return results, nil
}

// AnswerQuestion retrieves context and asks the LLM.
func (ix *Index) AnswerQuestion(ctx context.Context, question string, nContext int) (*Answer, error) {
	hits, err := ix.Search(ctx, question, nContext)
	if err != nil {
		return nil, err
	}

	var contextParts []string
	sources := make([]Metadata, 0, len(hits))
	for i, hit := range hits {
		contextParts = append(contextParts, fmt.Sprintf("--- Document %d ---\n%s", i+1, hit.Document))
		sources = append(sources, hit.Metadata)
	}

	prompt := fmt.Sprintf(ix.QuestionPrompt, strings.Join(contextParts, "\n\n"), question)
	answer, err := ix.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Answer{
		Question:    question,
		Answer:      strings.TrimSpace(answer),
		Sources:     sources,
		ContextUsed: len(hits),
	}, nil
}

// FilterBy returns up to n documents matching the metadata filters exactly.
// Supported keys: wellbore, operator.
func (ix *Index) FilterBy(filters map[string]string, n int) []SearchResult {
	results := []SearchResult{}
	for _, doc := range ix.docs {
		if w, ok := filters["wellbore"]; ok && doc.Metadata.Wellbore != w {
			continue
		}
		if o, ok := filters["operator"]; ok && doc.Metadata.Operator != o {
			continue
		}
		results = append(results, SearchResult{ID: doc.ID, Document: doc.Text, Metadata: doc.Metadata})
		if n > 0 && len(results) == n {
			break
		}
	}
	return results
}

// Wellbores lists the distinct wellbores in the index, sorted.
func (ix *Index) Wellbores() []string {
	seen := map[string]bool{}
	for _, doc := range ix.docs {
		if doc.Metadata.Wellbore != "" {
			seen[doc.Metadata.Wellbore] = true
		}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (ix *Index) Statistics() Statistics {
	wellbores := ix.Wellbores()
	return Statistics{
		TotalDocuments:  len(ix.docs),
		UniqueWellbores: len(wellbores),
		Wellbores:       wellbores,
	}
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// DocumentText renders a report into the searchable text form.
func DocumentText(r *model.Report) string {
	var parts []string

	parts = append(parts,
		fmt.Sprintf("Wellbore: %s", r.Wellbore),
		fmt.Sprintf("Period: %s", r.Period),
		fmt.Sprintf("Operator: %s", r.Operator),
		fmt.Sprintf("Rig: %s", r.RigName),
	)
	if r.DepthMD != nil {
		parts = append(parts, fmt.Sprintf("Current Depth MD: %gm", *r.DepthMD))
	}
	if r.HoleSize != nil {
		parts = append(parts, fmt.Sprintf("Hole Size: %g inches", *r.HoleSize))
	}

	if r.Summary.Activities24h != "" {
		parts = append(parts, fmt.Sprintf("\nActivities: %s", r.Summary.Activities24h))
	}
	if r.Summary.Planned24h != "" {
		parts = append(parts, fmt.Sprintf("Planned: %s", r.Summary.Planned24h))
	}

	if len(r.Operations) > 0 {
		parts = append(parts, "\nOperations:")
		for i, op := range r.Operations {
			if i == 10 {
				break
			}
			depth := "?"
			if op.Depth != nil {
				depth = fmt.Sprintf("%g", *op.Depth)
			}
			parts = append(parts, fmt.Sprintf("- %s-%s: %s at %sm - %s", op.StartTime, op.EndTime, op.Activity, depth, op.State))
		}
	}

	if len(r.Lithology) > 0 {
		parts = append(parts, "\nLithology:")
		for _, lith := range r.Lithology {
			parts = append(parts, fmt.Sprintf("- %g-%gm: %s", lith.StartDepth, lith.EndDepth, lith.Description))
		}
	}

	var highGas []model.GasReading
	for _, gas := range r.GasReadings {
		if gas.GasPercentage != nil && *gas.GasPercentage > docGasFloor {
			highGas = append(highGas, gas)
		}
	}
	if len(highGas) > 0 {
		parts = append(parts, "\nGas Readings:")
		for i, gas := range highGas {
			if i == 5 {
				break
			}
			depth, c1 := "?", "?"
			if gas.Depth != nil {
				depth = fmt.Sprintf("%g", *gas.Depth)
			}
			if gas.C1PPM != nil {
				c1 = fmt.Sprintf("%g", *gas.C1PPM)
			}
			parts = append(parts, fmt.Sprintf("- %sm: %g%% (C1: %s ppm)", depth, *gas.GasPercentage, c1))
		}
	}

	return strings.Join(parts, "\n")
}
