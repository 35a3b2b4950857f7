package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionforge/motionforge/schema"
)

func TestResampleFrameCount(t *testing.T) {
	tests := []struct {
		name      string
		frames    int
		inputFPS  float64
		outputFPS float64
		want      int
	}{
		{"30 to 50 over 8s", 241, 30, 50, 401},
		{"30 to 50 short", 31, 30, 50, 51},
		{"upsample 2x", 61, 30, 60, 121},
		{"downsample", 61, 30, 10, 21},
		{"native rate", 61, 30, 30, 61},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := makeTestClip(t, tt.frames, tt.inputFPS)
			out, err := Resample(clip, tt.outputFPS)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.NumFrames())
			assert.Equal(t, tt.outputFPS, out.FrameRate)
		})
	}
}

func TestResampleErrors(t *testing.T) {
	clip := makeTestClip(t, 30, 30)

	_, err := Resample(clip, 0)
	assert.ErrorIs(t, err, schema.ErrRange)
	_, err = Resample(clip, -50)
	assert.ErrorIs(t, err, schema.ErrRange)

	short := makeTestClip(t, 1, 30)
	_, err = Resample(short, 50)
	assert.ErrorIs(t, err, schema.ErrRange)
}

func TestResampleNoExtrapolation(t *testing.T) {
	clip := makeTestClip(t, 91, 30) // spans exactly 3s
	out, err := Resample(clip, 50)
	require.NoError(t, err)

	last := clip.Timestamps[len(clip.Timestamps)-1]
	for i := 1; i < len(out.Timestamps); i++ {
		assert.Greater(t, out.Timestamps[i], out.Timestamps[i-1])
	}
	assert.LessOrEqual(t, out.Timestamps[len(out.Timestamps)-1], last)
}

func TestResampleNativeRateReproduces(t *testing.T) {
	clip := makeTestClip(t, 61, 30)
	out, err := Resample(clip, 30)
	require.NoError(t, err)
	require.Equal(t, clip.NumFrames(), out.NumFrames())

	for k := range out.Frames {
		assert.InDelta(t, clip.Timestamps[k], out.Timestamps[k], 1e-9)
		for d := range out.Frames[k].JointAngles {
			assert.InDelta(t, clip.Frames[k].JointAngles[d], out.Frames[k].JointAngles[d], 1e-9)
		}
	}
}

func TestResampleMidpointInterpolation(t *testing.T) {
	half := math.Sqrt(2) / 2
	clip := &schema.MotionClip{
		FrameRate:  1,
		Timestamps: []float64{0, 1},
		Frames: []schema.Frame{
			{
				RootPosition:    schema.Vec3{0, 0, 1},
				RootOrientation: schema.IdentityQuat(),
				JointAngles:     []float64{0, 1},
			},
			{
				RootPosition:    schema.Vec3{2, 0, 1},
				RootOrientation: schema.Quat{Z: 1}, // 180 degrees about z
				JointAngles:     []float64{1, 3},
			},
		},
	}

	out, err := Resample(clip, 2)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumFrames())

	mid := out.Frames[1]
	assert.InDelta(t, 1.0, mid.RootPosition[0], 1e-12)
	assert.InDelta(t, 0.5, mid.JointAngles[0], 1e-12)
	assert.InDelta(t, 2.0, mid.JointAngles[1], 1e-12)

	// Halfway along the shortest arc to a 180 degree z rotation is 90
	// degrees about z.
	assert.InDelta(t, half, mid.RootOrientation.Z, 1e-9)
	assert.InDelta(t, half, mid.RootOrientation.W, 1e-9)
}

func TestResampleVelocityHandling(t *testing.T) {
	clip := makeTestClip(t, 31, 30)
	out, err := Resample(clip, 50)
	require.NoError(t, err)
	for _, f := range out.Frames {
		assert.Nil(t, f.JointVelocities)
		assert.Nil(t, f.RootVelocity)
	}

	// With velocities on every frame they are interpolated through.
	for i := range clip.Frames {
		clip.Frames[i].RootVelocity = []float64{1, 0, 0, 0, 0, 0}
		clip.Frames[i].JointVelocities = make([]float64, len(clip.Frames[i].JointAngles))
	}
	out, err = Resample(clip, 50)
	require.NoError(t, err)
	assert.True(t, out.HasVelocities())
	assert.InDelta(t, 1.0, out.Frames[10].RootVelocity[0], 1e-12)
}

func BenchmarkResample(b *testing.B) {
	skel := schema.G1Skeleton()
	neutral := skel.NeutralJointAngles()
	n := 361
	clip := &schema.MotionClip{
		FrameRate:  30,
		Timestamps: make([]float64, n),
		Frames:     make([]schema.Frame, n),
	}
	for k := 0; k < n; k++ {
		clip.Timestamps[k] = float64(k) / 30
		clip.Frames[k] = schema.Frame{
			RootPosition:    schema.Vec3{0, 0, schema.StandingRootHeight},
			RootOrientation: schema.IdentityQuat(),
			JointAngles:     append([]float64(nil), neutral...),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resample(clip, 50); err != nil {
			b.Fatal(err)
		}
	}
}
