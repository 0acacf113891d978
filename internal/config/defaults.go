package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 1536
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Chunking.IndexSize == 0 {
		cfg.Chunking.IndexSize = 1000
	}
	if cfg.Chunking.IndexOverlap == 0 {
		cfg.Chunking.IndexOverlap = 200
	}
	if cfg.Chunking.GenerationSize == 0 {
		cfg.Chunking.GenerationSize = 2000
	}
	if cfg.Chunking.GenerationOverlap == 0 {
		cfg.Chunking.GenerationOverlap = 100
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Speech.Model == "" {
		cfg.Speech.Model = "tts-1"
	}
	if cfg.Speech.Language == "" {
		cfg.Speech.Language = "en"
	}
	if cfg.Speech.AlexAccent == "" {
		cfg.Speech.AlexAccent = "british"
	}
	if cfg.Speech.BenAccent == "" {
		cfg.Speech.BenAccent = "american"
	}
	if cfg.Inbox.Extensions == nil {
		cfg.Inbox.Extensions = []string{".pdf", ".docx", ".txt"}
	}
}
