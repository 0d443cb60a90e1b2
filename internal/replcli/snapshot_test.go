package replcli

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/lnsp/tea/internal/config"
)

// TestREPL_TranscriptSnapshot locks down a full multi-line session's
// rendered transcript (prompts, results, debug annotations) against a
// stored snapshot.
func TestREPL_TranscriptSnapshot(t *testing.T) {
	out := run(t, config.Default(), strings.Join([]string{
		"var total = 0;",
		"total = total + 1;",
		"!debug",
		"total;",
		"!exit",
		"",
	}, "\n"))

	snaps.MatchSnapshot(t, out)
}
