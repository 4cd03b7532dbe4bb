package terminal

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/commands"
	"road-editor/internal/logger"
)

func TestSubmit(t *testing.T) {
	t.Parallel()
	log := logger.New("")
	reg := commands.NewRegistry()
	ran := 0
	reg.Register("ping", flag.NewFlagSet("ping", flag.ContinueOnError), func() error {
		ran++
		return nil
	})
	term := New(log, reg)
	assert.False(t, term.IsOpen())

	term.Submit("cmd ping")
	assert.Equal(t, 1, ran)

	term.Submit("build me a road")
	term.Submit("cmd fly")
	assert.Equal(t, 1, ran)

	lines := log.Lines()
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "> cmd ping")
	assert.Contains(t, lines[2], `commands start with "cmd "`)
	assert.Contains(t, lines[4], "unknown command: fly")
}
