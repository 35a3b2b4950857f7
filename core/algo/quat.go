package algo

import (
	"math"

	"github.com/motionforge/motionforge/schema"
)

// nlerpThreshold switches slerp to a linear blend when the arc is so
// small that sin(theta) loses precision.
const nlerpThreshold = 0.9995

// QuatDot returns the four-component dot product.
func QuatDot(a, b schema.Quat) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// QuatNormalize rescales q to unit length. A degenerate zero quaternion
// becomes identity.
func QuatNormalize(q schema.Quat) schema.Quat {
	n := math.Sqrt(QuatDot(q, q))
	if n == 0 {
		return schema.IdentityQuat()
	}
	return schema.Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// QuatMul returns the Hamilton product a*b.
func QuatMul(a, b schema.Quat) schema.Quat {
	return schema.Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QuatConj returns the conjugate of q.
func QuatConj(q schema.Quat) schema.Quat {
	return schema.Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// QuatSlerp blends two unit quaternions along the shortest arc.
// Antipodal representations of the same rotation are reconciled by
// negating b when the dot product is negative, which avoids the branch
// cut discontinuity linear component blending would produce.
func QuatSlerp(a, b schema.Quat, alpha float64) schema.Quat {
	dot := QuatDot(a, b)
	if dot < 0 {
		b = schema.Quat{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
		dot = -dot
	}

	if dot > nlerpThreshold {
		// Nearly parallel: normalized linear blend is exact enough.
		return QuatNormalize(schema.Quat{
			X: Lerp(a.X, b.X, alpha),
			Y: Lerp(a.Y, b.Y, alpha),
			Z: Lerp(a.Z, b.Z, alpha),
			W: Lerp(a.W, b.W, alpha),
		})
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-alpha)*theta) / sinTheta
	wb := math.Sin(alpha*theta) / sinTheta
	return schema.Quat{
		X: wa*a.X + wb*b.X,
		Y: wa*a.Y + wb*b.Y,
		Z: wa*a.Z + wb*b.Z,
		W: wa*a.W + wb*b.W,
	}
}

// QuatRotationError returns the minimal rotation vector (axis * angle)
// taking current to target. Used by tracking controllers as the
// orientation error term.
func QuatRotationError(target, current schema.Quat) [3]float64 {
	diff := QuatMul(target, QuatConj(current))
	if diff.W < 0 {
		diff = schema.Quat{X: -diff.X, Y: -diff.Y, Z: -diff.Z, W: -diff.W}
	}
	sinHalf := math.Sqrt(diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z)
	if sinHalf < 1e-12 {
		return [3]float64{}
	}
	w := math.Min(diff.W, 1)
	angle := 2 * math.Atan2(sinHalf, w)
	scale := angle / sinHalf
	return [3]float64{diff.X * scale, diff.Y * scale, diff.Z * scale}
}

// QuatIntegrate advances orientation q by angular velocity omega
// (rad/s, world frame) over dt seconds and renormalizes.
func QuatIntegrate(q schema.Quat, omega [3]float64, dt float64) schema.Quat {
	half := 0.5 * dt
	dq := QuatMul(schema.Quat{X: omega[0] * half, Y: omega[1] * half, Z: omega[2] * half}, q)
	return QuatNormalize(schema.Quat{
		X: q.X + dq.X,
		Y: q.Y + dq.Y,
		Z: q.Z + dq.Z,
		W: q.W + dq.W,
	})
}
