// Package testing drives immediate-mode UIs against an in-memory retained
// backend.
//
// # Quick Start
//
// Create a tester, pump a frame, simulate input and pump again:
//
//	func TestSettings(t *testing.T) {
//	    tester := imtest.NewTesterWithT(t)
//	    volume := 5
//	    draw := func(b *immediate.Builder) error {
//	        volume = b.IntField("Volume", volume, immediate.FlagNone)
//	        return nil
//	    }
//	    tester.PumpFrame(draw)
//
//	    tester.Type(imtest.ByName("Volume"), "8")
//	    tester.Pump()
//
//	    if volume != 8 {
//	        t.Errorf("volume = %d", volume)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the retained tree:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/settings.snapshot.json")
//
// Update snapshots with:
//
//	IMMEDIATE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
