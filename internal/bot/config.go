package bot

// Config holds the bot's tunables
type Config struct {
	// Long-polling timeout in seconds
	UpdateTimeout int
	// Directory progress report exports are written to
	ExportDir string
	// Maximum entries shown by the /list command
	ListLimit int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		UpdateTimeout: 60,
		ExportDir:     "data",
		ListLimit:     15,
	}
}
