package cli

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
)

func TestIndexConfigCoversSyncQueries(t *testing.T) {
	cfg := getIndexConfig()

	byName := make(map[string]fireconf.Collection)
	for _, col := range cfg.Collections {
		byName[col.Name] = col
	}

	// Both session collections need the unsynced-sweep composite.
	for _, name := range []string{"standups", "learning_hours"} {
		col, exists := byName[name]
		gt.Bool(t, exists).True()
		gt.Array(t, col.Indexes).Length(1)
		fields := col.Indexes[0].Fields
		gt.Array(t, fields).Length(2)
		gt.Value(t, fields[0].Path).Equal("status")
		gt.Value(t, fields[1].Path).Equal("synced")
	}

	points, exists := byName["learning_points"]
	gt.Bool(t, exists).True()
	gt.Array(t, points.Indexes).Length(2)
	gt.Value(t, points.Indexes[1].Fields[1].Order).Equal(fireconf.OrderDescending)

	feedback, exists := byName["givenPeerFeedback"]
	gt.Bool(t, exists).True()
	gt.Array(t, feedback.Indexes).Length(2)
	for _, idx := range feedback.Indexes {
		gt.Value(t, idx.Fields[1].Path).Equal("createdAt")
		gt.Value(t, idx.Fields[1].Order).Equal(fireconf.OrderDescending)
	}
}
