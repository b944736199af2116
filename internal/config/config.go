package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage struct {
		Endpoint          string   `yaml:"endpoint"`
		AccessKey         string   `yaml:"access_key"`
		SecretKey         string   `yaml:"secret_key"`
		Secure            bool     `yaml:"secure"`
		Region            string   `yaml:"region"`
		Bucket            string   `yaml:"bucket"`
		FolderPrefix      string   `yaml:"folder_prefix"`
		AllowedExtensions []string `yaml:"allowed_extensions"`
		SampleFraction    float64  `yaml:"sample_fraction"`
		SampleRandom      bool     `yaml:"sample_random"`
		SampleSeed        *int64   `yaml:"sample_seed"`
		LocalDir          string   `yaml:"local_dir"`
	} `yaml:"storage"`
	Chunking struct {
		MaxChunkSize int `yaml:"max_chunk_size"`
		Overlap      int `yaml:"overlap"`
		MinChunkSize int `yaml:"min_chunk_size"`
	} `yaml:"chunking"`
	Merge struct {
		MaxWorkers    int  `yaml:"max_workers"`
		ShuffleChunks bool `yaml:"shuffle_chunks"`
	} `yaml:"merge"`
	LLM struct {
		Provider        string  `yaml:"provider"`
		Model           string  `yaml:"model"`
		BaseURL         string  `yaml:"base_url"`
		APIKey          string  `yaml:"api_key"`
		Temperature     float64 `yaml:"temperature"`
		TopP            float64 `yaml:"top_p"`
		NumPredictPair  int     `yaml:"num_predict_pair"`
		NumPredictFinal int     `yaml:"num_predict_final"`
	} `yaml:"llm"`
	Prompts struct {
		System string `yaml:"system"`
		Merge  string `yaml:"merge"`
		Final  string `yaml:"final"`
	} `yaml:"prompts"`
	Output struct {
		File    string `yaml:"file"`
		Style   string `yaml:"style"` // "narrative" or "bullets"
		Archive string `yaml:"archive"`
	} `yaml:"output"`
	RAG struct {
		QdrantURL      string  `yaml:"qdrant_url"`
		QdrantAPIKey   string  `yaml:"qdrant_api_key"`
		Collection     string  `yaml:"collection"`
		EmbedModel     string  `yaml:"embed_model"`
		TopK           int     `yaml:"top_k"`
		ScoreThreshold float64 `yaml:"score_threshold"`
	} `yaml:"rag"`
}

// Default returns the fallbacks the pipeline assumes when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Storage.AllowedExtensions = []string{".txt", ".md"}
	cfg.Storage.SampleFraction = 1.0
	cfg.Storage.SampleRandom = true
	cfg.Chunking.MaxChunkSize = 5000
	cfg.Chunking.Overlap = 200
	cfg.Chunking.MinChunkSize = 100
	cfg.Merge.MaxWorkers = 4
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = "http://127.0.0.1:11434"
	cfg.LLM.Temperature = 0.3
	cfg.LLM.TopP = 0.9
	cfg.LLM.NumPredictPair = 512
	cfg.LLM.NumPredictFinal = 1024
	cfg.Output.File = "summary.txt"
	cfg.Output.Style = "narrative"
	cfg.RAG.TopK = 3
	cfg.RAG.ScoreThreshold = 0.6
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config. A missing file is fine: defaults + env cover it.
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// 3. Override with environment variables if present
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DIGEST_MINIO_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("DIGEST_MINIO_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("DIGEST_MINIO_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("DIGEST_MINIO_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("DIGEST_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("DIGEST_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("DIGEST_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("DIGEST_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("DIGEST_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Merge.MaxWorkers = n
		}
	}
	if v := os.Getenv("DIGEST_QDRANT_URL"); v != "" {
		cfg.RAG.QdrantURL = v
	}
	if v := os.Getenv("DIGEST_QDRANT_API_KEY"); v != "" {
		cfg.RAG.QdrantAPIKey = v
	}
}
