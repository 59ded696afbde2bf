package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "totalcash(mrq)", NormalizeName(" Total  Cash\n(mrq) "))
	require.True(t, HasPrefixName("52 Week Range", "52 week"))
	require.False(t, HasPrefixName("Day's Range", "52 Week Range"))
}

func TestClosest(t *testing.T) {
	candidates := []string{"Total Revenue", "Total Assets", "Net Debt"}

	require.Equal(t, "Total Revenue", Closest("Total Revenu", candidates))
	require.Equal(t, "Net Debt", Closest("net debt", candidates))
	require.Equal(t, "", Closest("Dividends & Splits", candidates))
	require.Equal(t, "", Closest("anything", nil))
}
