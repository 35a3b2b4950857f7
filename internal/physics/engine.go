// Package physics provides an in-process reference implementation of
// the contract.PhysicsEngine collaborator: a floating-base tracking
// integrator with critically damped PD joint dynamics. It stands in for
// a full rigid-body engine during offline conversion and in tests.
package physics

import (
	"context"
	"fmt"
	"math"

	"github.com/motionforge/motionforge/core/algo"
	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

// Options tunes the tracking controller and the divergence policy.
// Exact divergence thresholds are deliberately configurable; different
// engines draw that line differently.
type Options struct {
	Kp float64 // Proportional tracking gain
	Kd float64 // Damping gain

	// MaxSubstep caps the internal integration step. The engine also
	// bounds the substep by its own stability limit derived from Kp.
	MaxSubstep float64

	// MaxRootDrift is the root position error (meters) beyond which the
	// state is declared diverged even while still finite.
	MaxRootDrift float64
}

// DefaultOptions returns the gains used by the conversion pipeline.
func DefaultOptions() Options {
	return Options{
		Kp:           contract.DefaultKp,
		Kd:           contract.DefaultKd,
		MaxSubstep:   contract.DefaultMaxSubstep,
		MaxRootDrift: contract.DefaultMaxRootDrift,
	}
}

// PDEngine integrates a single mutable simulation state. It is not safe
// for concurrent use; run one engine per clip conversion.
type PDEngine struct {
	opts Options
	skel *schema.Skeleton

	loaded   bool
	hasState bool

	rootPos schema.Vec3
	rootOri schema.Quat
	joints  []float64

	rootLinVel []float64 // 3
	rootAngVel []float64 // 3
	jointVel   []float64
}

var _ contract.PhysicsEngine = &PDEngine{} // Compile-time check

// NewPDEngine creates an engine with the given options.
func NewPDEngine(opts Options) *PDEngine {
	return &PDEngine{opts: opts}
}

// LoadSkeleton prepares the engine for the skeleton's DOF layout.
func (e *PDEngine) LoadSkeleton(_ context.Context, skel *schema.Skeleton) error {
	if skel == nil || skel.JointDOF() == 0 {
		return fmt.Errorf("cannot load skeleton: empty descriptor")
	}
	if e.opts.Kp <= 0 || e.opts.MaxSubstep <= 0 || e.opts.MaxRootDrift <= 0 {
		return fmt.Errorf("cannot load skeleton: invalid engine options %+v", e.opts)
	}
	e.skel = skel
	e.loaded = true
	e.hasState = false
	return nil
}

// SetState overwrites the simulation state with the frame's pose and
// zero velocity.
func (e *PDEngine) SetState(_ context.Context, frame schema.Frame) error {
	if !e.loaded {
		return fmt.Errorf("engine state set before skeleton load")
	}
	n := e.skel.JointDOF()
	if len(frame.JointAngles) != n {
		return fmt.Errorf("state has %d joint angles, skeleton expects %d", len(frame.JointAngles), n)
	}

	e.rootPos = frame.RootPosition
	e.rootOri = algo.QuatNormalize(frame.RootOrientation)
	e.joints = append([]float64(nil), frame.JointAngles...)
	e.rootLinVel = make([]float64, 3)
	e.rootAngVel = make([]float64, 3)
	e.jointVel = make([]float64, n)
	e.hasState = true
	return nil
}

// StepTracking advances the state by dt seconds while tracking the
// target frame, sub-stepping to stay within the explicit integrator's
// stability region.
func (e *PDEngine) StepTracking(_ context.Context, target schema.Frame, dt float64) (*contract.StepResult, error) {
	if !e.hasState {
		return nil, fmt.Errorf("engine stepped before state initialization")
	}
	if dt <= 0 {
		return nil, fmt.Errorf("step dt must be positive, got %v", dt)
	}
	n := e.skel.JointDOF()
	if len(target.JointAngles) != n {
		return nil, fmt.Errorf("target has %d joint angles, skeleton expects %d", len(target.JointAngles), n)
	}

	// Unreachable targets surface as divergence, not as silent clamping.
	if !targetFinite(target) {
		return nil, fmt.Errorf("%w: non-finite tracking target", schema.ErrSimulationDiverged)
	}

	h := e.substep(dt)
	steps := int(math.Ceil(dt / h))
	h = dt / float64(steps)

	targetOri := algo.QuatNormalize(target.RootOrientation)
	for s := 0; s < steps; s++ {
		e.integrate(target, targetOri, h)
	}

	if err := e.checkDiverged(target); err != nil {
		return nil, err
	}

	rootVel := make([]float64, 6)
	copy(rootVel[:3], e.rootLinVel)
	copy(rootVel[3:], e.rootAngVel)
	return &contract.StepResult{
		RootPosition:    e.rootPos,
		RootOrientation: e.rootOri,
		JointAngles:     append([]float64(nil), e.joints...),
		RootVelocity:    rootVel,
		JointVelocities: append([]float64(nil), e.jointVel...),
	}, nil
}

// Close releases engine resources. The reference engine holds none.
func (e *PDEngine) Close() error {
	e.loaded = false
	e.hasState = false
	return nil
}

// substep picks the internal step: the configured cap, further bounded
// by the explicit-integration stability limit for the stiffness Kp.
func (e *PDEngine) substep(dt float64) float64 {
	h := e.opts.MaxSubstep
	if stable := 0.2 / math.Sqrt(e.opts.Kp); stable < h {
		h = stable
	}
	if dt < h {
		h = dt
	}
	return h
}

// integrate performs one semi-implicit Euler substep of the PD
// tracking dynamics.
func (e *PDEngine) integrate(target schema.Frame, targetOri schema.Quat, h float64) {
	kp, kd := e.opts.Kp, e.opts.Kd

	for i := range e.joints {
		acc := kp*(target.JointAngles[i]-e.joints[i]) - kd*e.jointVel[i]
		e.jointVel[i] += acc * h
		e.joints[i] += e.jointVel[i] * h
	}

	for i := range 3 {
		acc := kp*(target.RootPosition[i]-e.rootPos[i]) - kd*e.rootLinVel[i]
		e.rootLinVel[i] += acc * h
		e.rootPos[i] += e.rootLinVel[i] * h
	}

	oriErr := algo.QuatRotationError(targetOri, e.rootOri)
	for i := range 3 {
		acc := kp*oriErr[i] - kd*e.rootAngVel[i]
		e.rootAngVel[i] += acc * h
	}
	e.rootOri = algo.QuatIntegrate(e.rootOri, [3]float64{e.rootAngVel[0], e.rootAngVel[1], e.rootAngVel[2]}, h)
}

// checkDiverged applies the non-finite check and the root drift bound.
func (e *PDEngine) checkDiverged(target schema.Frame) error {
	finite := algo.SliceFinite(e.joints) && algo.SliceFinite(e.jointVel) &&
		algo.SliceFinite(e.rootLinVel) && algo.SliceFinite(e.rootAngVel) &&
		algo.AllFinite(e.rootPos[0], e.rootPos[1], e.rootPos[2]) &&
		algo.AllFinite(e.rootOri.X, e.rootOri.Y, e.rootOri.Z, e.rootOri.W)
	if !finite {
		return fmt.Errorf("%w: non-finite state after integration", schema.ErrSimulationDiverged)
	}

	drift := 0.0
	for i := range 3 {
		d := e.rootPos[i] - target.RootPosition[i]
		drift += d * d
	}
	if math.Sqrt(drift) > e.opts.MaxRootDrift {
		return fmt.Errorf("%w: root drifted %.2fm from target, bound is %.2fm",
			schema.ErrSimulationDiverged, math.Sqrt(drift), e.opts.MaxRootDrift)
	}
	return nil
}

// targetFinite validates a commanded tracking target.
func targetFinite(f schema.Frame) bool {
	return algo.AllFinite(f.RootPosition[0], f.RootPosition[1], f.RootPosition[2]) &&
		algo.AllFinite(f.RootOrientation.X, f.RootOrientation.Y, f.RootOrientation.Z, f.RootOrientation.W) &&
		algo.SliceFinite(f.JointAngles)
}
