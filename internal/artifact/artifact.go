// Package artifact packs converted motion clips into the columnar
// Parquet container consumed by training, and publishes it to the
// artifact registry. Field names and array shapes are the compatibility
// contract; the byte layout belongs to Parquet.
package artifact

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/motionforge/motionforge/schema"
	"github.com/parquet-go/parquet-go"
)

// Metadata keys stored in the Parquet footer.
const (
	metaFrameRate     = "frame_rate"
	metaSchemaID      = "schema_id"
	metaSchemaVersion = "schema_version"
	metaSourceName    = "source_name"
	metaCropStart     = "crop_start"
	metaCropEnd       = "crop_end"
	metaArmsOnly      = "arms_only"
	metaCreatedAt     = "created_at"
	metaToolVersion   = "tool_version"
)

// frameRecord is the Parquet row schema. Parquet stores these
// column-major on disk, which gives downstream loaders the
// structure-of-arrays layout they expect.
type frameRecord struct {
	// Time is the frame timestamp in seconds from clip start.
	Time float64 `parquet:"time,snappy"`

	// RootPosition is the world-frame root position (x, y, z).
	RootPosition []float64 `parquet:"root_position,list,snappy"`

	// RootOrientation is the root quaternion in xyzw order.
	RootOrientation []float64 `parquet:"root_orientation,list,snappy"`

	// JointAngles has one entry per actuated DOF.
	JointAngles []float64 `parquet:"joint_angles,list,snappy"`

	// JointVelocities has one entry per actuated DOF.
	JointVelocities []float64 `parquet:"joint_velocities,list,snappy"`

	// RootVelocity is linear (3) plus angular (3) root velocity.
	RootVelocity []float64 `parquet:"root_velocity,list,snappy"`
}

// Serialize validates a fully converted clip and packs it into an
// immutable Artifact. A clip that has not passed through resimulation
// is rejected rather than padded with default velocities.
func Serialize(clip *schema.MotionClip, meta schema.ArtifactMeta) (*schema.Artifact, error) {
	if clip.NumFrames() == 0 {
		return nil, fmt.Errorf("%w: clip has no frames", schema.ErrIncompleteClip)
	}
	for i, f := range clip.Frames {
		if !f.HasVelocities() {
			return nil, fmt.Errorf("%w: frame %d is missing velocity fields; run resimulation first",
				schema.ErrIncompleteClip, i)
		}
	}

	n := clip.NumFrames()
	art := &schema.Artifact{
		Meta:             meta,
		FrameRate:        clip.FrameRate,
		Timestamps:       make([]float64, n),
		RootPositions:    make([]schema.Vec3, n),
		RootOrientations: make([]schema.Quat, n),
		JointAngles:      make([][]float64, n),
		JointVelocities:  make([][]float64, n),
		RootVelocities:   make([][]float64, n),
	}
	for i, f := range clip.Frames {
		art.Timestamps[i] = clip.Timestamps[i]
		art.RootPositions[i] = f.RootPosition
		art.RootOrientations[i] = f.RootOrientation
		art.JointAngles[i] = append([]float64(nil), f.JointAngles...)
		art.JointVelocities[i] = append([]float64(nil), f.JointVelocities...)
		art.RootVelocities[i] = append([]float64(nil), f.RootVelocity...)
	}
	return art, nil
}

// Encode renders the artifact as Parquet bytes with provenance in the
// footer metadata. Lossless: Decode reproduces identical arrays.
func Encode(art *schema.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[frameRecord](&buf,
		parquet.KeyValueMetadata(metaFrameRate, strconv.FormatFloat(art.FrameRate, 'g', -1, 64)),
		parquet.KeyValueMetadata(metaSchemaID, art.Meta.SchemaID),
		parquet.KeyValueMetadata(metaSchemaVersion, strconv.Itoa(art.Meta.SchemaVersion)),
		parquet.KeyValueMetadata(metaSourceName, art.Meta.SourceName),
		parquet.KeyValueMetadata(metaCropStart, strconv.FormatFloat(art.Meta.CropStart, 'g', -1, 64)),
		parquet.KeyValueMetadata(metaCropEnd, strconv.FormatFloat(art.Meta.CropEnd, 'g', -1, 64)),
		parquet.KeyValueMetadata(metaArmsOnly, strconv.FormatBool(art.Meta.ArmsOnly)),
		parquet.KeyValueMetadata(metaCreatedAt, art.Meta.CreatedAt.UTC().Format(time.RFC3339Nano)),
		parquet.KeyValueMetadata(metaToolVersion, art.Meta.ToolVersion),
	)

	rows := make([]frameRecord, art.NumFrames())
	for i := range rows {
		p := art.RootPositions[i]
		q := art.RootOrientations[i]
		rows[i] = frameRecord{
			Time:            art.Timestamps[i],
			RootPosition:    []float64{p[0], p[1], p[2]},
			RootOrientation: []float64{q.X, q.Y, q.Z, q.W},
			JointAngles:     art.JointAngles[i],
			JointVelocities: art.JointVelocities[i],
			RootVelocity:    art.RootVelocities[i],
		}
	}
	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("failed to write artifact rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads an encoded artifact back, metadata included. Used by
// inspection tooling and round-trip tests; training consumes the bytes
// directly.
func Decode(blob []byte) (*schema.Artifact, error) {
	file, err := parquet.OpenFile(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}

	rows, err := parquet.Read[frameRecord](bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact rows: %w", err)
	}

	art := &schema.Artifact{
		Timestamps:       make([]float64, len(rows)),
		RootPositions:    make([]schema.Vec3, len(rows)),
		RootOrientations: make([]schema.Quat, len(rows)),
		JointAngles:      make([][]float64, len(rows)),
		JointVelocities:  make([][]float64, len(rows)),
		RootVelocities:   make([][]float64, len(rows)),
	}
	for i, row := range rows {
		art.Timestamps[i] = row.Time
		if len(row.RootPosition) == 3 {
			art.RootPositions[i] = schema.Vec3{row.RootPosition[0], row.RootPosition[1], row.RootPosition[2]}
		}
		if len(row.RootOrientation) == 4 {
			art.RootOrientations[i] = schema.Quat{
				X: row.RootOrientation[0], Y: row.RootOrientation[1],
				Z: row.RootOrientation[2], W: row.RootOrientation[3],
			}
		}
		art.JointAngles[i] = row.JointAngles
		art.JointVelocities[i] = row.JointVelocities
		art.RootVelocities[i] = row.RootVelocity
	}

	if v, ok := file.Lookup(metaFrameRate); ok {
		art.FrameRate, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := file.Lookup(metaSchemaID); ok {
		art.Meta.SchemaID = v
	}
	if v, ok := file.Lookup(metaSchemaVersion); ok {
		art.Meta.SchemaVersion, _ = strconv.Atoi(v)
	}
	if v, ok := file.Lookup(metaSourceName); ok {
		art.Meta.SourceName = v
	}
	if v, ok := file.Lookup(metaCropStart); ok {
		art.Meta.CropStart, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := file.Lookup(metaCropEnd); ok {
		art.Meta.CropEnd, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := file.Lookup(metaArmsOnly); ok {
		art.Meta.ArmsOnly, _ = strconv.ParseBool(v)
	}
	if v, ok := file.Lookup(metaCreatedAt); ok {
		art.Meta.CreatedAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	if v, ok := file.Lookup(metaToolVersion); ok {
		art.Meta.ToolVersion = v
	}
	return art, nil
}
