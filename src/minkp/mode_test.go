package minkp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      int
		want    Mode
		wantErr bool
	}{
		{in: 0, want: IntegerPrimal},
		{in: 1, want: RelaxedPrimal},
		{in: 2, want: Dual},
		{in: 3, wantErr: true},
		{in: -1, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMode, "mode %d", tt.in)
			continue
		}
		require.NoError(t, err, "mode %d", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseModeName(t *testing.T) {
	for in, want := range map[string]Mode{
		"integer": IntegerPrimal,
		" Relaxed": RelaxedPrimal,
		"DUAL":    Dual,
		"1":       RelaxedPrimal,
	} {
		got, err := ParseModeName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseModeName("simplex")
	assert.ErrorIs(t, err, ErrInvalidMode)
	_, err = ParseModeName("7")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestModeHelpers(t *testing.T) {
	assert.True(t, IntegerPrimal.IsPrimal())
	assert.True(t, RelaxedPrimal.IsPrimal())
	assert.False(t, Dual.IsPrimal())
	assert.False(t, Mode(5).Valid())
	assert.Equal(t, "dual", Dual.String())
	assert.Equal(t, "Mode(5)", Mode(5).String())
}
