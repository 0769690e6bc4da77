package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dfocalc/internal/engine"
	"github.com/udisondev/dfocalc/internal/model"
)

var errBroken = errors.New("broken bundle")

func fakeLoader(active, peak *atomic.Int32) Loader {
	return func(_ context.Context, source string) (*model.EquipmentSnapshot, error) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		if source == "broken" {
			return nil, errBroken
		}
		return &model.EquipmentSnapshot{
			Profile: model.Profile{CharacterName: source},
			Status:  map[string]float64{},
		}, nil
	}
}

func TestRun_OrderAndErrors(t *testing.T) {
	t.Parallel()

	sources := make([]string, 0, 21)
	for i := range 20 {
		sources = append(sources, fmt.Sprintf("char-%02d", i))
	}
	sources = append(sources, "broken")

	var active, peak atomic.Int32
	out, err := Run(context.Background(), sources, fakeLoader(&active, &peak), 3, engine.Options{})
	require.NoError(t, err)
	require.Len(t, out, len(sources))

	for i, o := range out[:20] {
		assert.Equal(t, sources[i], o.Source)
		assert.NoError(t, o.Err)
		assert.Equal(t, sources[i], o.Report.CharacterName)
		assert.Equal(t, engine.ModeDamage, o.Report.Mode)
	}

	last := out[20]
	assert.ErrorIs(t, last.Err, errBroken)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var active, peak atomic.Int32
	_, err := Run(ctx, []string{"a", "b"}, fakeLoader(&active, &peak), 2, engine.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ZeroWorkers(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	out, err := Run(context.Background(), []string{"a", "b"}, fakeLoader(&active, &peak), 0, engine.Options{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, int32(1), peak.Load())
}
