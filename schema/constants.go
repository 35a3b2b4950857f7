package schema

// RegistryBackend identifies the storage backend for the artifact
// registry.
type RegistryBackend string

// Supported registry backends.
const (
	SQLiteBackend     RegistryBackend = "sqlite"
	MySQLBackend      RegistryBackend = "mysql"
	PostgreSQLBackend RegistryBackend = "postgresql"
	NoneBackend       RegistryBackend = "none"
)

// Default conversion parameters.
const (
	// DefaultInputFPS is assumed for recordings without a timestamp column.
	DefaultInputFPS = 30.0

	// DefaultOutputFPS is the control rate of the training consumer.
	DefaultOutputFPS = 50.0
)
