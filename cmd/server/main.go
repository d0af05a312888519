package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/config"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/anomaly"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/trends"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/llm"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/rag"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/server"
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

	st, err := store.New(cfg.Paths.ProcessedDir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	reports, err := st.LoadReports()
	if err != nil {
		log.Fatalf("failed to load processed reports: %v", err)
	}
	log.Printf("loaded %d processed reports", len(reports))

	ctx := context.Background()

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
	} else {
		log.Println("no llm provider configured, search and ask endpoints are disabled")
	}

	cache, err := rag.NewFileCache(filepath.Join(cfg.Paths.ProcessedDir, "embedding_cache"))
	if err != nil {
		log.Fatalf("failed to open embedding cache: %v", err)
	}
	index := rag.NewIndex(embedder, cache, generator, cfg.Prompts.Question)
	if embedder != nil {
		if err := index.AddReports(ctx, reports); err != nil {
			log.Fatalf("failed to index reports: %v", err)
		}
	}

	detector := anomaly.NewDetector(cfg.Analysis.GasThreshold)
	g := graph.NewBuilder(cfg.Analysis.GasThreshold).Build(reports)
	t := trends.NewAggregator(detector).Analyze(reports)

	srv := &server.Server{
		Reports:        reports,
		Graph:          g,
		Index:          index,
		Trends:         t,
		GasThreshold:   cfg.Analysis.GasThreshold,
		DepthTolerance: cfg.Analysis.DepthTolerance,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("starting server on port %s", port)
	if err := srv.SetupRouter().Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
