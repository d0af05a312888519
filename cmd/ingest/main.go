package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/config"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/anomaly"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/pipeline"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/summary"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/trends"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/driver"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/llm"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/rag"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := loadDocuments(cfg.Paths.ReportDir)
	if err != nil {
		log.Fatalf("failed to read report directory: %v", err)
	}
	if len(docs) == 0 {
		log.Fatalf("no report text files found in %s", cfg.Paths.ReportDir)
	}
	log.Printf("found %d report documents in %s", len(docs), cfg.Paths.ReportDir)

	st, err := store.New(cfg.Paths.ProcessedDir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	detector := anomaly.NewDetector(cfg.Analysis.GasThreshold)
	p := pipeline.New(detector)
	p.Store = st
	p.CheckpointInterval = cfg.Analysis.CheckpointInterval

	var generator llm.LLMClient
	var embedder llm.EmbedderClient
	if cfg.LLM.Provider != "" {
		client, emb, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("failed to initialize llm client: %v", err)
		}
		limiter := llm.NewRateLimiter(cfg.RateLimit.RPM, cfg.RateLimit.TPM)
		generator = llm.NewRetryingClient(client, limiter, cfg.LLM.MaxRetries)
		embedder = emb
		p.Summarizer = summary.NewSummarizer(generator, cfg.Prompts.DailySummary)
	} else {
		log.Println("no llm provider configured, skipping daily summaries and embeddings")
	}

	result, runErr := p.Run(ctx, docs)
	if result == nil {
		log.Fatalf("pipeline failed: %v", runErr)
	}
	if runErr != nil {
		log.Printf("pipeline stopped early: %v", runErr)
	}

	g := graph.NewBuilder(cfg.Analysis.GasThreshold).Build(result.Reports)
	stats := g.Statistics()
	log.Printf("knowledge model built: %d nodes, %d edges", stats.TotalNodes, stats.TotalEdges)

	if cfg.Graph.URI != "" {
		exportGraph(ctx, cfg.Graph, g)
	}

	t := trends.NewAggregator(detector).Analyze(result.Reports)
	if err := st.SaveTrends(t); err != nil {
		log.Fatalf("failed to save trends: %v", err)
	}

	if embedder != nil {
		cache, err := rag.NewFileCache(filepath.Join(cfg.Paths.ProcessedDir, "embedding_cache"))
		if err != nil {
			log.Fatalf("failed to open embedding cache: %v", err)
		}
		index := rag.NewIndex(embedder, cache, generator, cfg.Prompts.Question)
		if err := index.AddReports(ctx, result.Reports); err != nil {
			log.Printf("failed to index reports: %v", err)
		} else {
			ixStats := index.Statistics()
			log.Printf("indexed %d documents across %d wellbores", ixStats.TotalDocuments, ixStats.UniqueWellbores)
		}
	}

	log.Printf("ingestion run %s finished", result.RunID)
}

// loadDocuments reads every .txt file in dir, sorted by name so runs are
// reproducible and checkpoints line up between invocations.
func loadDocuments(dir string) ([]pipeline.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []pipeline.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, pipeline.Document{Filename: entry.Name(), Text: string(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}

func exportGraph(ctx context.Context, cfg config.GraphConfig, g *graph.Graph) {
	drv, err := driver.NewMemgraphDriver(cfg.URI, cfg.User, cfg.Password)
	if err != nil {
		log.Printf("graph database unavailable, skipping export: %v", err)
		return
	}
	defer drv.Close(ctx)

	if err := drv.BuildIndices(ctx); err != nil {
		log.Printf("failed to build graph indices: %v", err)
	}
	if err := driver.Export(ctx, drv, g); err != nil {
		log.Printf("failed to export graph: %v", err)
		return
	}
	log.Println("knowledge model exported to graph database")
}
