package repositories

import "testing"

func TestResultDeltas(t *testing.T) {
	wonDelta, lostDelta, pointsDelta := resultDeltas(true)
	if wonDelta != 1 || lostDelta != 0 || pointsDelta != 2 {
		t.Errorf("winner deltas = (%d, %d, %d), want (1, 0, 2)", wonDelta, lostDelta, pointsDelta)
	}

	wonDelta, lostDelta, pointsDelta = resultDeltas(false)
	if wonDelta != 0 || lostDelta != 1 || pointsDelta != 0 {
		t.Errorf("loser deltas = (%d, %d, %d), want (0, 1, 0)", wonDelta, lostDelta, pointsDelta)
	}
}
