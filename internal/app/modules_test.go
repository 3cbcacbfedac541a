package app

import (
	"testing"

	"github.com/nfrund/aprovados/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModules(t *testing.T) {
	modules := NewModules(Dependencies{Config: &config.Config{}})

	require.Len(t, modules, 1)
	assert.Equal(t, "aprovados", modules[0].Name())
}
