package schema

import "time"

// ArtifactMeta is the provenance carried alongside the packed arrays.
type ArtifactMeta struct {
	SourceName    string    // Basename of the input recording
	SchemaID      string    // Skeleton identifier
	SchemaVersion int       // Skeleton version
	CropStart     float64   // Crop window start, seconds
	CropEnd       float64   // Crop window end, seconds
	ArmsOnly      bool      // Whether the arms-only transform was applied
	CreatedAt     time.Time // Packing time, UTC
	ToolVersion   string    // motionforge version that produced the artifact
}

// Artifact is the final packaged output: per-field arrays of equal
// length plus provenance. It is constructed once by the serializer and
// never mutated afterwards.
type Artifact struct {
	Meta      ArtifactMeta
	FrameRate float64

	Timestamps       []float64
	RootPositions    []Vec3
	RootOrientations []Quat
	JointAngles      [][]float64
	JointVelocities  [][]float64
	RootVelocities   [][]float64
}

// NumFrames returns the packed frame count.
func (a *Artifact) NumFrames() int {
	return len(a.Timestamps)
}

// ArtifactRecord is a registry listing entry for one stored artifact
// version.
type ArtifactRecord struct {
	VersionID string
	Name      string
	CreatedAt time.Time
	FrameRate float64
	NumFrames int
	SizeBytes int64
	SchemaID  string
	ArmsOnly  bool
}

// RegistryStatus summarizes a registry backend for status output.
type RegistryStatus struct {
	Backend    string
	Location   string
	Artifacts  int
	TotalBytes int64
}
