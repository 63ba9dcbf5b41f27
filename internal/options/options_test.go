package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	seed  uint64
	label string
	calls []string
}

var errNegative = errors.New("negative seed")

func withSeed(seed int64) Option[*target] {
	return New(func(t *target) error {
		if seed < 0 {
			return errNegative
		}
		t.seed = uint64(seed)
		t.calls = append(t.calls, "seed")

		return nil
	})
}

func withLabel(label string) Option[*target] {
	return NoError(func(t *target) {
		t.label = label
		t.calls = append(t.calls, "label")
	})
}

func TestApply(t *testing.T) {
	t.Run("in order", func(t *testing.T) {
		tg := &target{}
		require.NoError(t, Apply(tg, withLabel("a"), withSeed(7), withLabel("b")))
		require.Equal(t, uint64(7), tg.seed)
		require.Equal(t, "b", tg.label)
		require.Equal(t, []string{"label", "seed", "label"}, tg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		tg := &target{}
		err := Apply(tg, withSeed(-1), withLabel("never"))
		require.ErrorIs(t, err, errNegative)
		require.Empty(t, tg.label)
	})

	t.Run("nil options", func(t *testing.T) {
		tg := &target{}
		require.NoError(t, Apply(tg, nil, withLabel("x"), nil))
		require.Equal(t, "x", tg.label)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&target{}))
	})
}
