package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gcbaptista/patent-semantic-search/api"
	"github.com/gcbaptista/patent-semantic-search/config"
	"github.com/gcbaptista/patent-semantic-search/internal/corpus"
	"github.com/gcbaptista/patent-semantic-search/internal/embedding"
	"github.com/gcbaptista/patent-semantic-search/internal/normalizer"
	"github.com/gcbaptista/patent-semantic-search/internal/search"
	"github.com/gcbaptista/patent-semantic-search/internal/summarize"
	"github.com/gcbaptista/patent-semantic-search/internal/vectorstore"
	"github.com/gcbaptista/patent-semantic-search/services"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides API_PORT)")
		corpusDir  = flag.String("corpus-dir", "", "Directory containing patent JSON files (overrides DATA_PATH)")
		persistDir = flag.String("persist-dir", "", "Directory for the persistent vector database (overrides CHROMA_PERSIST_DIR)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Patent Semantic Search - semantic patent retrieval with AI summarization\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                               # Start server on default port 8000\n", os.Args[0])
		fmt.Printf("  %s --port 9000                   # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --corpus-dir ./patent_jsons   # Use custom corpus directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Patent Semantic Search v1.0.0\n")
		return
	}

	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	// Flag overrides
	if *port != "" {
		p, err := strconv.Atoi(*port)
		if err != nil {
			logger.Error("invalid --port value", "port", *port, "error", err)
			os.Exit(1)
		}
		settings.Port = p
	}
	if *corpusDir != "" {
		settings.CorpusPath = *corpusDir
	}
	if *persistDir != "" {
		settings.PersistDir = *persistDir
	}

	logger.Info("starting patent search service",
		"port", settings.Port,
		"corpus_path", settings.CorpusPath,
		"persist_dir", settings.PersistDir,
		"collection", settings.CollectionName,
		"embedding_model", settings.Ollama.Model,
	)

	// Wire up the pipeline
	embedder := embedding.NewOllamaEmbedder(embedding.Config{
		BaseURL: settings.Ollama.BaseURL,
		Model:   settings.Ollama.Model,
		Timeout: settings.Ollama.Timeout,
	})

	store, err := vectorstore.NewStore(settings.PersistDir, settings.CollectionName, embedder, logger)
	if err != nil {
		logger.Error("failed to open vector store", "error", err)
		os.Exit(1)
	}

	searcher, err := search.NewService(store, logger)
	if err != nil {
		logger.Error("failed to create search service", "error", err)
		os.Exit(1)
	}

	groqClient := summarize.NewGroqClient(summarize.GroqConfig{
		BaseURL:     settings.Groq.BaseURL,
		APIKey:      settings.Groq.APIKey,
		Model:       settings.Groq.Model,
		Temperature: settings.Groq.Temperature,
		MaxTokens:   settings.Groq.MaxTokens,
		Timeout:     settings.Groq.Timeout,
	})
	summarizer := summarize.NewService(groqClient, logger)

	loader := corpus.NewLoader(settings.CorpusPath, logger)
	norm := normalizer.New(logger)

	// reindex loads the corpus, normalizes it, and writes it into the store.
	// It serves both the startup build and the /reindex endpoint.
	reindex := func(ctx context.Context, mode services.IndexMode) (int, error) {
		rawPatents, err := loader.Load()
		if err != nil {
			return 0, fmt.Errorf("failed to load corpus: %w", err)
		}

		docs := norm.NormalizeAll(rawPatents)
		if err := searcher.IndexDocuments(ctx, docs, mode); err != nil {
			return 0, fmt.Errorf("failed to index documents: %w", err)
		}
		return len(docs), nil
	}

	// Build the index on first run; subsequent starts reuse the persisted store.
	if !searcher.IsIndexed() {
		logger.Info("vector database empty, indexing corpus")
		count, err := reindex(context.Background(), services.IndexModeUpsert)
		if err != nil {
			logger.Error("startup indexing failed", "error", err)
			os.Exit(1)
		}
		logger.Info("indexed documents", "count", count)
	} else {
		logger.Info("vector database found, ready to serve requests")
	}

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, searcher, summarizer, reindex)

	// Start the server
	logger.Info("starting server", "addr", fmt.Sprintf(":%d", settings.Port))
	if err := router.Run(fmt.Sprintf(":%d", settings.Port)); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
