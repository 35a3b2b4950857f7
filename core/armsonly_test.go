package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionforge/motionforge/schema"
)

func TestArmsOnlyClampsLocomotion(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 90, 30)

	// Give the legs and the root some captured motion to clamp away.
	knee := jointIndex(t, skel, "left_knee")
	for i := range clip.Frames {
		clip.Frames[i].JointAngles[knee] += 0.2
		clip.Frames[i].RootPosition[0] = float64(i) * 0.01
	}

	out, err := ArmsOnly(clip, schema.CropSpec{StartTime: 0, EndTime: 10}, skel, skel.ArmsMask(), false)
	require.NoError(t, err)
	require.Equal(t, clip.NumFrames(), out.NumFrames())

	neutral := skel.NeutralJointAngles()
	mask := skel.ArmsMask()
	for i := range out.Frames {
		f := out.Frames[i]
		assert.Equal(t, schema.Vec3{0, 0, schema.StandingRootHeight}, f.RootPosition)
		assert.Equal(t, schema.IdentityQuat(), f.RootOrientation)
		for d, driven := range mask {
			if driven {
				assert.Equal(t, clip.Frames[i].JointAngles[d], f.JointAngles[d], "frame %d dof %d", i, d)
			} else {
				assert.Equal(t, neutral[d], f.JointAngles[d], "frame %d dof %d", i, d)
			}
		}
	}
}

func TestArmsOnlyKeepRoot(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 90, 30)
	for i := range clip.Frames {
		clip.Frames[i].RootPosition[0] = float64(i) * 0.01
	}

	out, err := ArmsOnly(clip, schema.CropSpec{StartTime: 0, EndTime: 10}, skel, skel.ArmsMask(), true)
	require.NoError(t, err)

	for i := range out.Frames {
		assert.Equal(t, clip.Frames[i].RootPosition, out.Frames[i].RootPosition)
		assert.Equal(t, clip.Frames[i].RootOrientation, out.Frames[i].RootOrientation)
	}
}

func TestArmsOnlyCropsFirst(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 360, 30)

	out, err := ArmsOnly(clip, schema.CropSpec{StartTime: 0, EndTime: 5}, skel, skel.ArmsMask(), false)
	require.NoError(t, err)
	assert.Equal(t, 151, out.NumFrames())
	assert.Equal(t, 0.0, out.Timestamps[0])
}

func TestArmsOnlyBadMask(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 30, 30)

	_, err := ArmsOnly(clip, schema.CropSpec{StartTime: 0, EndTime: 1}, skel, make(schema.ArmsOnlyMask, 3), false)
	assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
}

func TestArmsOnlySkeletonMismatch(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 30, 30)
	clip.Frames[10].JointAngles = clip.Frames[10].JointAngles[:5]

	_, err := ArmsOnly(clip, schema.CropSpec{StartTime: 0, EndTime: 1}, skel, skel.ArmsMask(), false)
	assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
}

func TestArmsOnlyDeterministic(t *testing.T) {
	skel := schema.G1Skeleton()
	clip := makeTestClip(t, 90, 30)

	a, err := ArmsOnly(clip, schema.CropSpec{StartTime: 1, EndTime: 2}, skel, skel.ArmsMask(), false)
	require.NoError(t, err)
	b, err := ArmsOnly(clip, schema.CropSpec{StartTime: 1, EndTime: 2}, skel, skel.ArmsMask(), false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
