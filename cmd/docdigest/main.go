package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docdigest/internal/archive"
	"docdigest/internal/chunker"
	"docdigest/internal/config"
	"docdigest/internal/format"
	"docdigest/internal/loader"
	"docdigest/internal/merge"
	"docdigest/internal/pipeline"
	"docdigest/internal/rag"
	"docdigest/internal/summarize"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docdigest",
		Short: "Hierarchical document summarization over bounded-prompt models",
	}
	configPath string
	htmlOut    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")

	runCmd.Flags().BoolVar(&htmlOut, "html", false, "Additionally write an HTML rendering next to the output file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(runsCmd)
}

func buildSummarizer(ctx context.Context, cfg *config.Config) (summarize.Summarizer, error) {
	return summarize.NewSummarizer(ctx, summarize.Options{
		Provider:        cfg.LLM.Provider,
		Model:           cfg.LLM.Model,
		BaseURL:         cfg.LLM.BaseURL,
		APIKey:          cfg.LLM.APIKey,
		Temperature:     cfg.LLM.Temperature,
		TopP:            cfg.LLM.TopP,
		NumPredictPair:  cfg.LLM.NumPredictPair,
		NumPredictFinal: cfg.LLM.NumPredictFinal,
		SystemPrompt:    cfg.Prompts.System,
		MergePrompt:     cfg.Prompts.Merge,
		FinalPrompt:     cfg.Prompts.Final,
	})
}

func buildSource(cfg *config.Config) (loader.Source, error) {
	var primary loader.Source
	if cfg.Storage.Endpoint != "" {
		minioSrc, err := loader.NewMinioSource(loader.MinioConfig{
			Endpoint:          cfg.Storage.Endpoint,
			AccessKey:         cfg.Storage.AccessKey,
			SecretKey:         cfg.Storage.SecretKey,
			Secure:            cfg.Storage.Secure,
			Region:            cfg.Storage.Region,
			Bucket:            cfg.Storage.Bucket,
			FolderPrefix:      cfg.Storage.FolderPrefix,
			AllowedExtensions: cfg.Storage.AllowedExtensions,
			SampleFraction:    cfg.Storage.SampleFraction,
			SampleRandom:      cfg.Storage.SampleRandom,
			SampleSeed:        cfg.Storage.SampleSeed,
		})
		if err != nil {
			return nil, err
		}
		primary = minioSrc
	}

	var fallback loader.Source
	if cfg.Storage.LocalDir != "" {
		fallback = loader.NewLocalSource(cfg.Storage.LocalDir, cfg.Storage.AllowedExtensions)
	}

	switch {
	case primary != nil && fallback != nil:
		return loader.NewHybridSource(primary, fallback), nil
	case primary != nil:
		return primary, nil
	case fallback != nil:
		return fallback, nil
	default:
		return nil, fmt.Errorf("no document source configured: set storage.endpoint or storage.local_dir")
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config, source loader.Source) (*pipeline.Pipeline, *archive.Store, error) {
	summarizer, err := buildSummarizer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var store *archive.Store
	if cfg.Output.Archive != "" {
		store, err = archive.NewStore(cfg.Output.Archive)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open archive: %w", err)
		}
	}

	p := pipeline.New(pipeline.Params{
		Source:       source,
		Chunker:      chunker.NewSmartChunker(cfg.Chunking.MaxChunkSize, cfg.Chunking.Overlap),
		Merger:       merge.NewHierarchicalMerger(summarizer, cfg.Merge.MaxWorkers, cfg.Merge.ShuffleChunks),
		MinChunkSize: cfg.Chunking.MinChunkSize,
		Style:        cfg.Output.Style,
		OutputFile:   cfg.Output.File,
		Archive:      store,
	})
	return p, store, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Summarize every document from the configured source",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		source, err := buildSource(cfg)
		if err != nil {
			log.Fatalf("Failed to build source: %v", err)
		}

		ctx := cmd.Context()
		p, store, err := buildPipeline(ctx, cfg, source)
		if err != nil {
			log.Fatalf("Failed to build pipeline: %v", err)
		}
		if store != nil {
			defer store.Close()
		}

		start := time.Now()
		summary, err := p.Run(ctx)
		if err != nil {
			log.Fatalf("Summarization failed: %v", err)
		}
		if summary == "" {
			fmt.Println("No documents found to process.")
			return
		}

		if htmlOut && cfg.Output.File != "" {
			html, err := format.RenderHTML(summary)
			if err != nil {
				log.Printf("warning: html rendering failed: %v", err)
			} else if err := os.WriteFile(cfg.Output.File+".html", []byte(html), 0o644); err != nil {
				log.Printf("warning: failed to write html output: %v", err)
			}
		}

		fmt.Printf("Finished in %s.\n", time.Since(start).Round(time.Second))
		if cfg.Output.File != "" {
			fmt.Printf("Summary saved to: %s\n", cfg.Output.File)
		} else {
			fmt.Println(summary)
		}
	},
}

var textCmd = &cobra.Command{
	Use:   "text [files...]",
	Short: "Summarize local files, or stdin when no files are given",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var texts []string
		if len(args) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("Failed to read stdin: %v", err)
			}
			texts = []string{string(data)}
		} else {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					log.Fatalf("Failed to read %s: %v", path, err)
				}
				texts = append(texts, string(data))
			}
		}

		// print to stdout instead of the configured output file
		cfg.Output.File = ""

		ctx := cmd.Context()
		p, store, err := buildPipeline(ctx, cfg, nil)
		if err != nil {
			log.Fatalf("Failed to build pipeline: %v", err)
		}
		if store != nil {
			defer store.Close()
		}

		summary, err := p.SummarizeTexts(ctx, texts)
		if err != nil {
			log.Fatalf("Summarization failed: %v", err)
		}
		if summary == "" {
			fmt.Println("Nothing to summarize.")
			return
		}
		fmt.Println(summary)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the indexed document collection",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.RAG.QdrantURL == "" {
			log.Fatal("rag.qdrant_url is not configured")
		}

		ctx := cmd.Context()
		store := rag.NewQdrantStore(cfg.RAG.QdrantURL, cfg.RAG.QdrantAPIKey, cfg.RAG.Collection)
		if _, err := store.CheckCollection(ctx); err != nil {
			log.Fatalf("Qdrant check failed: %v", err)
		}

		client := rag.NewClient(
			rag.NewOllamaEmbedder(cfg.RAG.EmbedModel, cfg.LLM.BaseURL),
			store,
			rag.NewOllamaGenerator(cfg.LLM.Model, cfg.LLM.BaseURL),
			cfg.RAG.TopK,
			cfg.RAG.ScoreThreshold,
		)

		answer, err := client.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			log.Fatalf("Failed to answer: %v", err)
		}
		fmt.Println(answer)
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived summarization runs",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Output.Archive == "" {
			log.Fatal("output.archive is not configured")
		}

		store, err := archive.NewStore(cfg.Output.Archive)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), 20)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %d docs, %d chunks, %s  (%s)\n",
				r.CreatedAt.Format(time.RFC3339), r.ID, r.Documents, r.Chunks,
				r.Duration.Round(time.Millisecond), r.Style)
		}
	},
}
