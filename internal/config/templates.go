package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Lattice Pricer Configuration

[pricing]
# Lattice steps used when --steps is not given
default_steps = 100
# Worker goroutines for per-layer node sweeps (0 = one per CPU)
workers = 0
# Relative bump for bump-and-reprice Greeks (0.01 = 1%)
greeks_bump = 0.01

[database]
# Record every pricing run in a local SQLite database
enabled = true
# Database file path (default: <config dir>/pricer.db)
#path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal
console = true
# Log to a rotated file
file = true
# Log file path (default: <config dir>/logs/pricer.log)
#file_path = ""
# Rotation: max file size in MB, retained backups, max age in days
max_size = 50
max_backups = 5
max_age = 30

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

// writeTemplateConfig writes a commented config template so the user
// has something to edit on first run.
func writeTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
