package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSetAndDisable(t *testing.T) {
	prev := Logger()
	defer Set(prev)

	var buf bytes.Buffer
	Set(zerolog.New(&buf).Level(zerolog.DebugLevel))
	log := Logger()
	log.Debug().Int("round", 3).Msg("fold")
	require.Contains(t, buf.String(), `"round":3`)

	buf.Reset()
	SetLevel(zerolog.WarnLevel)
	log = Logger()
	log.Debug().Msg("hidden")
	require.Empty(t, buf.String())

	Disable()
	log = Logger()
	log.Error().Msg("nothing")
	require.Empty(t, buf.String())
}

func TestSetOutput(t *testing.T) {
	prev := Logger()
	defer Set(prev)

	var first, second bytes.Buffer
	Set(zerolog.New(&first).Level(zerolog.InfoLevel))
	SetOutput(&second)
	log := Logger()
	log.Info().Msg("moved")
	require.Empty(t, first.String())
	require.Contains(t, second.String(), "moved")
}

func TestConcurrentUse(t *testing.T) {
	prev := Logger()
	defer Set(prev)
	Set(zerolog.New(io.Discard))

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					SetLevel(zerolog.Level(j % 4))
					continue
				}
				log := Logger()
				log.Debug().Int("j", j).Msg("fold")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
