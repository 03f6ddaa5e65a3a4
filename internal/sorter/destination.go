package sorter

// Destination provides an interface for sort target backends.
// A destination path is the planner's output: for the filesystem backend it
// is an absolute path, for the S3 backend it is interpreted as an object
// key under the configured bucket/prefix.
type Destination interface {
	// Exists reports whether something already occupies destPath.
	// Collision resolution probes this repeatedly.
	Exists(destPath string) (bool, error)

	// Store writes the source file's content to destPath, creating any
	// intermediate directories (or key prefixes) as needed. Store never
	// removes the source; move semantics are the orchestrator's concern.
	Store(srcPath string, destPath string) error

	// ValidateSetup verifies that the destination is accessible and
	// properly configured.
	ValidateSetup() error
}
