package animation

import "time"

// DefaultConfig returns a slow box-breathing rhythm.
func DefaultConfig() Config {
	return Config{
		Inhale: Range{Min: 4 * time.Second, Max: 4 * time.Second},
		Hold:   Range{Min: 2 * time.Second, Max: 3 * time.Second},
		Exhale: Range{Min: 6 * time.Second, Max: 6 * time.Second},
		Rest:   Range{Min: time.Second, Max: 2 * time.Second},
	}
}
