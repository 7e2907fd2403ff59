package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{AppIconName, PausedIconName} {
		icon, err := Icon(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(icon.Content()), "<svg")
	}
}

func TestIconIsCached(t *testing.T) {
	assert.Same(t, AppIcon(), AppIcon())
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
