package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burninghelix123/sequences"
)

func TestSequenceSummary(t *testing.T) {
	s, err := sequences.New("shot.####", sequences.WithItems([]string{
		"shot.0101", "shot.0102", "shot.0104",
	}))
	require.NoError(t, err)

	out, err := SequenceSummary(s)
	require.NoError(t, err)
	assert.Contains(t, out, "shot.####")
	assert.Contains(t, out, "101-102, 104")
	assert.Contains(t, out, "103")
	assert.Contains(t, out, "pounds")
}

func TestPlanTable(t *testing.T) {
	plan := &sequences.RenamePlan{Moves: []sequences.Move{
		{From: "a.0001.exr", To: "a.0011.exr"},
		{From: "a.0002.exr", To: "a.0012.exr"},
	}}
	out := PlanTable(plan, false)
	assert.Contains(t, out, "a.0001.exr")
	assert.Contains(t, out, "a.0011.exr")
	assert.Contains(t, out, "2 moves")

	dry := PlanTable(plan, true)
	assert.Contains(t, dry, "dry run")
}

func TestPlanTableEmpty(t *testing.T) {
	assert.Contains(t, PlanTable(nil, false), "nothing to do")
}

func TestBanner(t *testing.T) {
	out := Banner("1.2.3")
	assert.True(t, strings.Contains(out, "seqtool"))
	assert.True(t, strings.Contains(out, "1.2.3"))
}
