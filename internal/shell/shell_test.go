package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fidget/internal/stats"
)

func TestStatsToggle(t *testing.T) {
	st := stats.New(false)
	sh := New(st, nil)

	require.Equal(t, "Performance stats enabled", sh.Execute("stats on"))
	require.True(t, st.Enabled())

	require.Equal(t, "Performance stats disabled", sh.Execute("stats off"))
	require.False(t, st.Enabled())
}

func TestCommandsAreCaseAndSpaceInsensitive(t *testing.T) {
	st := stats.New(false)
	sh := New(st, nil)

	require.Equal(t, "Performance stats enabled", sh.Execute("  STATS ON  "))
	require.True(t, st.Enabled())
}

func TestHelpListsEveryCommand(t *testing.T) {
	sh := New(stats.New(false), nil)
	out := sh.Execute("help")
	for _, c := range Commands() {
		require.Contains(t, out, c[0])
	}
}

func TestUnknownCommandSuggestsHelp(t *testing.T) {
	sh := New(stats.New(false), nil)
	out := sh.Execute("bogus")
	require.Contains(t, out, "Unknown command: bogus")
	require.Contains(t, out, "help")
}

func TestEmptyLineIsSilent(t *testing.T) {
	sh := New(stats.New(false), nil)
	require.Equal(t, "", sh.Execute("   "))
}

func TestResetClearsCounters(t *testing.T) {
	st := stats.New(true)
	for i := 0; i < 10; i++ {
		st.RecordLoop()
	}
	sh := New(st, nil)

	require.Equal(t, "Performance stats reset", sh.Execute("reset"))
	require.Zero(t, st.LoopCount())
}

func TestStatusIncludesEngineBlock(t *testing.T) {
	st := stats.New(true)
	sh := New(st, func() string { return "Mode: circular_move" })

	out := sh.Execute("status")
	require.Contains(t, out, "Mode: circular_move")
	require.Contains(t, out, "Performance stats: enabled")
	require.Contains(t, out, "Loop count:")
}

func TestStatusDisabledStats(t *testing.T) {
	sh := New(stats.New(false), nil)
	out := sh.Execute("status")
	require.Contains(t, out, "Performance stats: disabled")
	require.False(t, strings.Contains(out, "Loop count:"))
}

func TestReportDelegatesToStats(t *testing.T) {
	st := stats.New(true)
	st.RecordLoop()
	sh := New(st, nil)
	require.Contains(t, sh.Execute("report"), "Loops:")
}
