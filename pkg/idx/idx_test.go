package idx_test

import (
	"testing"

	"github.com/aussiebroadwan/entrabackup/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonic(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = idx.New().String()
	}

	// Ids minted in the same millisecond still sort in generation order.
	require.IsIncreasing(t, ids)
}
