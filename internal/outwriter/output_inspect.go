package outwriter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

// PrintClipSummary writes a human-readable overview of a clip: capture
// properties first, then per-joint angle ranges.
func PrintClipSummary(source string, clip *schema.MotionClip, skel *schema.Skeleton, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeClipSummary(w, source, clip, skel, cfg)
	}, "Wrote summary")
}

func writeClipSummary(w io.Writer, source string, clip *schema.MotionClip, skel *schema.Skeleton, cfg *contract.Config) error {
	props := tablewriter.NewWriter(w)
	props.Header([]string{"Property", "Value"})

	minH, maxH := rootHeightRange(clip)
	data := [][]string{
		{"Source", truncatePath(source, maxSourceWidth(cfg))},
		{"Skeleton", fmt.Sprintf("%s v%d", skel.ID, skel.Version)},
		{"Frames", strconv.Itoa(clip.NumFrames())},
		{"Frame rate", fmt.Sprintf("%.2f fps", clip.FrameRate)},
		{"Duration", fmt.Sprintf("%.3f s", clip.Duration())},
		{"Velocities", yesNo(clip.HasVelocities())},
		{"Root height", fmt.Sprintf("%.3f .. %.3f m", minH, maxH)},
	}
	if err := props.Bulk(data); err != nil {
		return err
	}
	if err := props.Render(); err != nil {
		return err
	}

	joints := tablewriter.NewWriter(w)
	joints.Header([]string{"Joint", "Min (rad)", "Max (rad)", "Span (rad)"})
	joints.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for j, joint := range skel.Joints {
		if joint.Kind != schema.HingeJoint {
			continue
		}
		idx := hingeIndex(skel, j)
		lo, hi := jointAngleRange(clip, idx)
		rows = append(rows, []string{
			joint.Name,
			fmt.Sprintf("%.4f", lo),
			fmt.Sprintf("%.4f", hi),
			fmt.Sprintf("%.4f", hi-lo),
		})
	}
	if err := joints.Bulk(rows); err != nil {
		return err
	}
	return joints.Render()
}

// hingeIndex maps a skeleton joint index to its position in the
// per-frame joint angle vector, which excludes the free joint.
func hingeIndex(skel *schema.Skeleton, jointIdx int) int {
	idx := 0
	for j := 0; j < jointIdx; j++ {
		if skel.Joints[j].Kind == schema.HingeJoint {
			idx++
		}
	}
	return idx
}

func rootHeightRange(clip *schema.MotionClip) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range clip.Frames {
		h := clip.Frames[i].RootPosition[2]
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func jointAngleRange(clip *schema.MotionClip, idx int) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range clip.Frames {
		if idx >= len(clip.Frames[i].JointAngles) {
			continue
		}
		v := clip.Frames[i].JointAngles[idx]
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// maxSourceWidth leaves room for the property column and table borders
// in the detected terminal width.
func maxSourceWidth(cfg *contract.Config) int {
	const tableOverhead = 20
	width := TermWidth(cfg) - tableOverhead
	if width < 20 {
		width = 20
	}
	return width
}

// truncatePath shortens a path from the left, keeping the more
// informative trailing segments.
func truncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
