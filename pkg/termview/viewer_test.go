package termview

import "testing"

func TestMotionAxis_DecaysToRest(t *testing.T) {
	axis := newMotionAxis(30)
	axis.velocity = 1.0

	if !axis.active() {
		t.Fatal("Axis with velocity should be active")
	}

	// A critically damped spring settles without oscillation
	previous := axis.step()
	for i := 0; i < 300; i++ {
		v := axis.step()
		if v < 0 {
			t.Fatalf("Velocity overshot zero at step %d: %f", i, v)
		}
		if v > previous+1e-12 {
			t.Fatalf("Velocity increased at step %d: %f -> %f", i, previous, v)
		}
		previous = v
	}

	if axis.active() {
		t.Errorf("Axis still active after settling: %f", axis.velocity)
	}
}

func TestMotionAxis_StepReturnsCurrentVelocity(t *testing.T) {
	axis := newMotionAxis(30)
	axis.velocity = 0.5

	if got := axis.step(); got != 0.5 {
		t.Errorf("Expected first step to return 0.5, got %f", got)
	}
}
