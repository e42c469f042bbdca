package models

// BuildInfo carries immutable build-time metadata embedded into the client
// and server binaries via linker flags. Exposed through the version
// endpoint and startup logs.
type BuildInfo struct {
	version string
	date    string
	commit  string
}

// NewBuildInfo constructs [BuildInfo] from linker-injected values,
// substituting "N/A" for anything left empty.
func NewBuildInfo(version, date, commit string) BuildInfo {
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}
	return BuildInfo{version: version, date: date, commit: commit}
}

// Version returns the semantic version string of the build.
func (b BuildInfo) Version() string { return b.version }

// Date returns the build timestamp string.
func (b BuildInfo) Date() string { return b.date }

// Commit returns the source-control commit hash of the build.
func (b BuildInfo) Commit() string { return b.commit }
