package platform

import (
	"mindfulpause/internal/core/activity"

	"github.com/rs/zerolog"
)

// NewIdleProvider returns the idle-time source for this OS. Providers that
// hold a connection also implement io.Closer.
func NewIdleProvider(logger zerolog.Logger) activity.IdleProvider {
	return newIdleProvider(logger.With().Str("component", "idle").Logger())
}
