package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-c", "conf.json", "-x", "other"}, []string{"-c"})
	require.Equal(t, []string{"-c", "conf.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-v"}, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	// -c has no value here; the next token is another flag and must not be
	// swallowed as a value.
	got := FilterArgs([]string{"-c", "-v"}, []string{"-c"})
	require.Equal(t, []string{"-c"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "b"}, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}
