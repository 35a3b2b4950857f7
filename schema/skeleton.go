// Package schema defines the shared data model for motion conversion:
// the robot skeleton, motion clips, artifacts, and error kinds.
package schema

import "strings"

// JointKind identifies the kinematic type of a joint.
type JointKind string

// Supported joint kinds.
const (
	// FreeJoint is the unactuated 6-DOF floating base, stored as
	// position (3) plus unit quaternion xyzw (4) in the pose vector.
	FreeJoint JointKind = "free"

	// HingeJoint is a single actuated revolute coordinate.
	HingeJoint JointKind = "hinge"
)

// Joint describes one joint of the skeleton and where its coordinates
// live inside the flat pose vector.
type Joint struct {
	Name   string    // Joint name, e.g. "left_knee"
	Kind   JointKind // Kinematic type
	Offset int       // Index of the first coordinate in the pose vector
	Width  int       // Number of pose coordinates (7 for free, 1 for hinge)
}

// Skeleton is the immutable description of a robot: ordered joints, the
// neutral standing pose, and an identifier that ends up in every
// artifact produced for it. Construct it once at startup and pass it
// explicitly; never mutate it after construction.
type Skeleton struct {
	ID      string  // Schema identifier, e.g. "g1_29dof"
	Version int     // Schema version, bumped on any layout change
	Joints  []Joint // Ordered joints, free root first
	Neutral []float64
}

// PoseDOF returns the length of the flat pose vector (root pose included).
func (s *Skeleton) PoseDOF() int {
	total := 0
	for _, j := range s.Joints {
		total += j.Width
	}
	return total
}

// JointDOF returns the number of actuated coordinates (root excluded).
func (s *Skeleton) JointDOF() int {
	total := 0
	for _, j := range s.Joints {
		if j.Kind != FreeJoint {
			total += j.Width
		}
	}
	return total
}

// NeutralJointAngles returns the neutral values of the actuated joints,
// in pose-vector order. The returned slice is a copy.
func (s *Skeleton) NeutralJointAngles() []float64 {
	out := make([]float64, 0, s.JointDOF())
	for _, j := range s.Joints {
		if j.Kind == FreeJoint {
			continue
		}
		out = append(out, s.Neutral[j.Offset:j.Offset+j.Width]...)
	}
	return out
}

// ArmsOnlyMask is a per-actuated-DOF boolean: true means the DOF is
// driven from captured data, false means it is clamped to the neutral
// pose. The root is always clamped by the arms-only transform and is
// not part of the mask.
type ArmsOnlyMask []bool

// armJointPrefixes classifies a joint as part of an arm.
var armJointPrefixes = []string{"left_shoulder", "right_shoulder", "left_elbow", "right_elbow", "left_wrist", "right_wrist"}

// ArmsMask derives the arms-only mask statically from joint names:
// shoulder, elbow and wrist joints stay driven, everything else is
// clamped to neutral.
func (s *Skeleton) ArmsMask() ArmsOnlyMask {
	mask := make(ArmsOnlyMask, 0, s.JointDOF())
	for _, j := range s.Joints {
		if j.Kind == FreeJoint {
			continue
		}
		isArm := false
		for _, prefix := range armJointPrefixes {
			if strings.HasPrefix(j.Name, prefix) {
				isArm = true
				break
			}
		}
		for range j.Width {
			mask = append(mask, isArm)
		}
	}
	return mask
}

// Canonical standing root pose shared by the neutral pose and the
// arms-only transform.
const (
	StandingRootHeight = 0.785 // meters, pelvis height of the standing robot
)

// G1 neutral leg values: hip pitch, hip roll, hip yaw, knee,
// ankle pitch, ankle roll. Slight crouch so the feet load evenly.
var g1NeutralLeg = []float64{-0.312, 0, 0, 0.669, -0.363, 0}

// G1Skeleton builds the skeleton descriptor for the Unitree G1 with 29
// actuated DOF. Pose vector layout: root position (3), root quaternion
// xyzw (4), left leg (6), right leg (6), waist (3), left arm (7),
// right arm (7).
func G1Skeleton() *Skeleton {
	names := []string{
		"left_hip_pitch", "left_hip_roll", "left_hip_yaw", "left_knee", "left_ankle_pitch", "left_ankle_roll",
		"right_hip_pitch", "right_hip_roll", "right_hip_yaw", "right_knee", "right_ankle_pitch", "right_ankle_roll",
		"waist_yaw", "waist_roll", "waist_pitch",
		"left_shoulder_pitch", "left_shoulder_roll", "left_shoulder_yaw", "left_elbow", "left_wrist_roll", "left_wrist_pitch", "left_wrist_yaw",
		"right_shoulder_pitch", "right_shoulder_roll", "right_shoulder_yaw", "right_elbow", "right_wrist_roll", "right_wrist_pitch", "right_wrist_yaw",
	}

	joints := make([]Joint, 0, len(names)+1)
	joints = append(joints, Joint{Name: "root", Kind: FreeJoint, Offset: 0, Width: 7})
	offset := 7
	for _, name := range names {
		joints = append(joints, Joint{Name: name, Kind: HingeJoint, Offset: offset, Width: 1})
		offset++
	}

	neutral := make([]float64, offset)
	neutral[2] = StandingRootHeight
	neutral[6] = 1 // identity quaternion, w component in xyzw order
	copy(neutral[7:13], g1NeutralLeg)
	copy(neutral[13:19], g1NeutralLeg)
	// Waist and arms stay at zero.

	return &Skeleton{
		ID:      "g1_29dof",
		Version: 1,
		Joints:  joints,
		Neutral: neutral,
	}
}
