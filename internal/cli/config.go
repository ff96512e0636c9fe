package cli

import "os"

// Config holds the external-service settings for one invocation. Values
// come from the environment once, at startup; nothing deeper in the code
// reads ambient process state.
type Config struct {
	// GroqAPIKey authenticates the model calls. Required for
	// recommendation commands.
	GroqAPIKey string
	// Model overrides the default chat model.
	Model string
	// ModelBaseURL overrides the OpenAI-compatible endpoint.
	ModelBaseURL string
	// GitHubToken raises the search rate limit. Optional.
	GitHubToken string
	// RedisURL selects a Redis cache backend instead of the file cache.
	RedisURL string
}

// ConfigFromEnv reads the configuration from the environment. main loads
// .env beforehand so local development keys are picked up too.
func ConfigFromEnv() Config {
	return Config{
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		Model:        os.Getenv("PIPWISE_MODEL"),
		ModelBaseURL: os.Getenv("PIPWISE_MODEL_BASE_URL"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		RedisURL:     os.Getenv("PIPWISE_REDIS_URL"),
	}
}
