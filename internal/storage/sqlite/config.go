package sqlite

import "github.com/mcoot/santaworkshop/internal/storage"

// Config holds SQLite file settings
type Config struct {
	// Path is the database file; ":memory:" keeps everything in process
	Path string

	// Namespace prefixes every key written by this storage
	Namespace string
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:      "santa.db",
		Namespace: storage.DefaultNamespace,
	}
}
