// Package version carries build information stamped at link time via
// -ldflags "-X github.com/neox5/metricbox/internal/version.version=...".
package version

var (
	version = "dev"
	commit  = ""
)

// String returns the version, with the commit appended when known.
func String() string {
	if commit == "" {
		return version
	}
	return version + " (" + commit + ")"
}
