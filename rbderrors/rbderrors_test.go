package rbderrors

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"go.viam.com/test"
)

func TestWrappedErrorsMatchTheirSentinelViaIs(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{FrameMismatch("spatial.Twist.Add"), ErrFrameMismatch},
		{DimensionMismatch("mechanism.SetConfiguration", 2, 3), ErrDimensionMismatch},
		{UnsupportedTopology("dynamics.InverseDynamics"), ErrUnsupportedTopology},
		{UnsupportedJoint("loop"), ErrUnsupportedJoint},
		{Singular("mass matrix"), ErrSingular},
		{ZeroMass("empty subtree"), ErrZeroMass},
	}
	for _, c := range cases {
		test.That(t, pkgerrors.Is(c.err, c.sentinel), test.ShouldBeTrue)
	}
}

func TestDimensionMismatchMessageIncludesSizes(t *testing.T) {
	err := DimensionMismatch("mechanism.SetConfiguration", 2, 3)
	test.That(t, err.Error(), test.ShouldContainSubstring, "want length 2")
	test.That(t, err.Error(), test.ShouldContainSubstring, "got 3")
}
