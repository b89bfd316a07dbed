package domain

// Config mirrors ~/.macromate/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	API                 APISettings     `yaml:"api"`
	Chat                ChatSettings    `yaml:"chat"`
	Storage             StorageSettings `yaml:"storage"`
}

// APISettings points at the chat-completion endpoint.
type APISettings struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	// APIKey may be left empty; the key is then resolved from
	// MACROMATE_API_KEY or OPENAI_API_KEY.
	APIKey string `yaml:"api_key"`
}

// ChatSettings tunes the completion pipeline.
type ChatSettings struct {
	HistoryTurns          int     `yaml:"history_turns"`
	Temperature           float64 `yaml:"temperature"`
	MaxAttempts           int     `yaml:"max_attempts"`
	RetryBackoffMS        int     `yaml:"retry_backoff_ms"`
	ConnectTimeoutSeconds int     `yaml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int     `yaml:"read_timeout_seconds"`
}

// StorageSettings locates the sqlite database.
type StorageSettings struct {
	Path string `yaml:"path"`
}
