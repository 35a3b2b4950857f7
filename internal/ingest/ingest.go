// Package ingest reads and writes motion capture CSV files in the
// fixed column layout of the recording pipeline: root position (3),
// root quaternion xyzw (4), then one column per actuated joint. A
// variant with a leading timestamp column is also accepted.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/motionforge/motionforge/schema"
)

// ReadMotionCSV loads a recording into a MotionClip. Column count
// decides the layout: poseDOF columns means row index at the given fps,
// poseDOF+1 means an explicit leading timestamp column. fps must be
// positive for the index-based layout; for the timestamp layout it is
// recorded as the clip's nominal rate when positive, otherwise derived
// from the median timestamp delta.
func ReadMotionCSV(path string, skel *schema.Skeleton, fps float64) (*schema.MotionClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open motion file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated per row against the skeleton
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse motion CSV %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("motion file %q is empty", path)
	}

	poseDOF := skel.PoseDOF()
	jointDOF := skel.JointDOF()
	hasTimeColumn := len(records[0]) == poseDOF+1
	if !hasTimeColumn && len(records[0]) != poseDOF {
		return nil, fmt.Errorf("%w: row has %d columns, skeleton %s expects %d (or %d with timestamps)",
			schema.ErrSchemaMismatch, len(records[0]), skel.ID, poseDOF, poseDOF+1)
	}

	clip := &schema.MotionClip{
		Timestamps: make([]float64, 0, len(records)),
		Frames:     make([]schema.Frame, 0, len(records)),
	}

	for rowIdx, record := range records {
		values, err := parseRow(record, rowIdx)
		if err != nil {
			return nil, err
		}
		if len(values) != len(records[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				schema.ErrSchemaMismatch, rowIdx, len(values), len(records[0]))
		}

		var t float64
		pose := values
		if hasTimeColumn {
			t = values[0]
			pose = values[1:]
		} else {
			if fps <= 0 {
				return nil, fmt.Errorf("%w: fps override required for recordings without a timestamp column", schema.ErrRange)
			}
			t = float64(rowIdx) / fps
		}

		clip.Timestamps = append(clip.Timestamps, t)
		clip.Frames = append(clip.Frames, schema.Frame{
			RootPosition:    schema.Vec3{pose[0], pose[1], pose[2]},
			RootOrientation: schema.Quat{X: pose[3], Y: pose[4], Z: pose[5], W: pose[6]},
			JointAngles:     append([]float64(nil), pose[7:7+jointDOF]...),
		})
	}

	for i := 1; i < len(clip.Timestamps); i++ {
		if clip.Timestamps[i] <= clip.Timestamps[i-1] {
			return nil, fmt.Errorf("%w: timestamps not strictly increasing at row %d", schema.ErrRange, i)
		}
	}

	clip.FrameRate = fps
	if clip.FrameRate <= 0 {
		clip.FrameRate = rateFromTimestamps(clip.Timestamps)
	}
	if clip.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: could not determine frame rate for %q", schema.ErrRange, path)
	}
	return clip, nil
}

// WriteMotionCSV writes a clip back in the original pose-only layout,
// creating parent directories as needed. Velocities are not part of the
// interchange format and are dropped.
func WriteMotionCSV(path string, clip *schema.MotionClip) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create motion file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, frame := range clip.Frames {
		row := make([]string, 0, 7+len(frame.JointAngles))
		row = append(row,
			formatValue(frame.RootPosition[0]),
			formatValue(frame.RootPosition[1]),
			formatValue(frame.RootPosition[2]),
			formatValue(frame.RootOrientation.X),
			formatValue(frame.RootOrientation.Y),
			formatValue(frame.RootOrientation.Z),
			formatValue(frame.RootOrientation.W),
		)
		for _, v := range frame.JointAngles {
			row = append(row, formatValue(v))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write motion row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// parseRow converts one CSV record to floats.
func parseRow(record []string, rowIdx int) ([]float64, error) {
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %d: invalid number %q: %w", rowIdx, i, field, err)
		}
		values[i] = v
	}
	return values, nil
}

// rateFromTimestamps derives a nominal rate from the median delta.
// Capture jitter is tolerated, not corrected.
func rateFromTimestamps(ts []float64) float64 {
	if len(ts) < 2 {
		return 0
	}
	deltas := make([]float64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		deltas[i-1] = ts[i] - ts[i-1]
	}
	median := medianOf(deltas)
	if median <= 0 {
		return 0
	}
	return 1 / median
}

// medianOf returns the median without disturbing the input ordering.
func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted[len(sorted)/2]
}

// formatValue matches the %.8f formatting of the recording pipeline.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}
