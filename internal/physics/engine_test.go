package physics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionforge/motionforge/schema"
)

func standingFrame(skel *schema.Skeleton) schema.Frame {
	return schema.Frame{
		RootPosition:    schema.Vec3{0, 0, schema.StandingRootHeight},
		RootOrientation: schema.IdentityQuat(),
		JointAngles:     skel.NeutralJointAngles(),
	}
}

func readyEngine(t *testing.T, opts Options) (*PDEngine, *schema.Skeleton) {
	t.Helper()
	skel := schema.G1Skeleton()
	eng := NewPDEngine(opts)
	require.NoError(t, eng.LoadSkeleton(context.Background(), skel))
	require.NoError(t, eng.SetState(context.Background(), standingFrame(skel)))
	return eng, skel
}

func TestEngineMisuse(t *testing.T) {
	ctx := context.Background()
	skel := schema.G1Skeleton()

	t.Run("load nil skeleton", func(t *testing.T) {
		err := NewPDEngine(DefaultOptions()).LoadSkeleton(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("load with bad options", func(t *testing.T) {
		err := NewPDEngine(Options{}).LoadSkeleton(ctx, skel)
		assert.Error(t, err)
	})

	t.Run("set state before load", func(t *testing.T) {
		err := NewPDEngine(DefaultOptions()).SetState(ctx, standingFrame(skel))
		assert.Error(t, err)
	})

	t.Run("set state with wrong dof", func(t *testing.T) {
		eng := NewPDEngine(DefaultOptions())
		require.NoError(t, eng.LoadSkeleton(ctx, skel))
		frame := standingFrame(skel)
		frame.JointAngles = frame.JointAngles[:4]
		assert.Error(t, eng.SetState(ctx, frame))
	})

	t.Run("step before state", func(t *testing.T) {
		eng := NewPDEngine(DefaultOptions())
		require.NoError(t, eng.LoadSkeleton(ctx, skel))
		_, err := eng.StepTracking(ctx, standingFrame(skel), 1.0/30)
		assert.Error(t, err)
	})

	t.Run("non-positive dt", func(t *testing.T) {
		eng, _ := readyEngine(t, DefaultOptions())
		_, err := eng.StepTracking(ctx, standingFrame(skel), 0)
		assert.Error(t, err)
	})

	t.Run("target with wrong dof", func(t *testing.T) {
		eng, _ := readyEngine(t, DefaultOptions())
		target := standingFrame(skel)
		target.JointAngles = target.JointAngles[:4]
		_, err := eng.StepTracking(ctx, target, 1.0/30)
		assert.Error(t, err)
	})
}

func TestEngineConvergesToConstantTarget(t *testing.T) {
	ctx := context.Background()
	eng, skel := readyEngine(t, DefaultOptions())

	target := standingFrame(skel)
	target.JointAngles[0] += 0.5
	target.RootPosition[0] = 0.2

	var res *schema.Frame
	for i := 0; i < 30; i++ {
		step, err := eng.StepTracking(ctx, target, 1.0/30)
		require.NoError(t, err)
		res = &schema.Frame{
			RootPosition: step.RootPosition,
			JointAngles:  step.JointAngles,
		}
	}

	assert.InDelta(t, target.JointAngles[0], res.JointAngles[0], 1e-3)
	assert.InDelta(t, target.RootPosition[0], res.RootPosition[0], 1e-3)
}

func TestEngineQuaternionStaysUnit(t *testing.T) {
	ctx := context.Background()
	eng, skel := readyEngine(t, DefaultOptions())

	half := math.Sqrt(2) / 2
	target := standingFrame(skel)
	target.RootOrientation = schema.Quat{Z: half, W: half} // 90 degrees about z

	for i := 0; i < 15; i++ {
		res, err := eng.StepTracking(ctx, target, 1.0/30)
		require.NoError(t, err)
		q := res.RootOrientation
		norm := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
		assert.InDelta(t, 1.0, norm, 1e-9)
	}
}

func TestEngineRejectsNonFiniteTarget(t *testing.T) {
	ctx := context.Background()
	eng, skel := readyEngine(t, DefaultOptions())

	target := standingFrame(skel)
	target.JointAngles[3] = math.NaN()

	_, err := eng.StepTracking(ctx, target, 1.0/30)
	assert.ErrorIs(t, err, schema.ErrSimulationDiverged)
}

func TestEngineRootDriftDivergence(t *testing.T) {
	ctx := context.Background()
	eng, skel := readyEngine(t, DefaultOptions())

	// The state cannot cover 100m in one frame, so the drift bound trips.
	target := standingFrame(skel)
	target.RootPosition[0] = 100

	_, err := eng.StepTracking(ctx, target, 1.0/30)
	assert.ErrorIs(t, err, schema.ErrSimulationDiverged)
}

func TestEngineVelocitiesReported(t *testing.T) {
	ctx := context.Background()
	eng, skel := readyEngine(t, DefaultOptions())

	target := standingFrame(skel)
	target.JointAngles[0] += 0.3

	res, err := eng.StepTracking(ctx, target, 1.0/30)
	require.NoError(t, err)
	require.Len(t, res.RootVelocity, 6)
	require.Len(t, res.JointVelocities, skel.JointDOF())

	// Motion toward the raised target means positive joint velocity.
	assert.Greater(t, res.JointVelocities[0], 0.0)
}

func TestEngineSubstepBound(t *testing.T) {
	eng := NewPDEngine(Options{Kp: 10000, Kd: 200, MaxSubstep: 0.01, MaxRootDrift: 10})

	// Stability bound 0.2/sqrt(Kp) = 0.002 undercuts the configured cap.
	h := eng.substep(1.0 / 30)
	assert.InDelta(t, 0.002, h, 1e-12)

	// A dt smaller than both bounds is used directly.
	eng = NewPDEngine(DefaultOptions())
	h = eng.substep(0.0005)
	assert.InDelta(t, 0.0005, h, 1e-12)
}
