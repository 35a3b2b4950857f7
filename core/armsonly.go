package core

import (
	"fmt"

	"github.com/motionforge/motionforge/schema"
)

// ArmsOnly crops the clip to the given window and then freezes
// locomotion: every masked-off DOF is clamped to the skeleton's neutral
// value and the root is pinned to the canonical standing pose. Arm
// joints keep their captured motion. With keepRoot the captured root
// trajectory survives instead of being pinned.
//
// The transform is deterministic: identical inputs yield bit-identical
// output.
func ArmsOnly(clip *schema.MotionClip, spec schema.CropSpec, skel *schema.Skeleton, mask schema.ArmsOnlyMask, keepRoot bool) (*schema.MotionClip, error) {
	if err := clip.CheckSkeleton(skel); err != nil {
		return nil, err
	}
	if len(mask) != skel.JointDOF() {
		return nil, fmt.Errorf("%w: mask has %d entries, skeleton %s has %d actuated DOF",
			schema.ErrSchemaMismatch, len(mask), skel.ID, skel.JointDOF())
	}

	out, err := Crop(clip, spec)
	if err != nil {
		return nil, err
	}

	neutral := skel.NeutralJointAngles()
	standingPos := schema.Vec3{skel.Neutral[0], skel.Neutral[1], skel.Neutral[2]}
	standingOri := schema.Quat{X: skel.Neutral[3], Y: skel.Neutral[4], Z: skel.Neutral[5], W: skel.Neutral[6]}

	for i := range out.Frames {
		f := &out.Frames[i]
		if !keepRoot {
			f.RootPosition = standingPos
			f.RootOrientation = standingOri
		}
		for d, driven := range mask {
			if !driven {
				f.JointAngles[d] = neutral[d]
			}
		}
	}
	return out, nil
}
