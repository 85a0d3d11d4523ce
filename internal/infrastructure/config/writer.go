package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Campaign Companion Configuration

llm:
  provider: openai
  model: gpt-4o-mini
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

embedder:
  provider: openai
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

qdrant:
  host: localhost
  port: 6334
  collection: companion_notes
  # api_key: your-api-key (for Qdrant Cloud)

quota:
  daily_limit: 10
  weekly_limit: 30
  monthly_limit: 75

extraction:
  min_content_length: 50
  timeout_seconds: 60

contact:
  message: You have reached your extraction limit. Contact the game master to request a higher limit.
  contact_url: mailto:gm@example.com
  prefilled_subject: Extraction limit increase request
`

// WriteDefault creates the .companion directory and writes a default config
// file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
