package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	cases := []struct {
		raw  string
		want Priority
	}{
		{"HIGH", PriorityHigh},
		{"medium", PriorityMedium},
		{" Low ", PriorityLow},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.raw)
		require.NoError(t, err, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestParsePriorityRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "URGENT", "hi gh"} {
		_, err := ParsePriority(raw)
		require.ErrorIs(t, err, ErrInvalidPriority, "raw %q", raw)
	}
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("").Valid())
	assert.False(t, Priority("high").Valid())
}
