package runtime

var (
	// Version of the binary, set at build time
	Version = "0.0.0-dev"
	// GitCommit the binary was built from
	GitCommit = "unknown"
	// Timestamp of the build (unix seconds)
	Timestamp = "unknown"
)
