package app

import "fmt"

// Build information, overridden with -ldflags "-X" at release time.
var (
    BuildVersion = "0.0.0-dev"
    BuildCommit  = "unknown"
    BuildDate    = "unknown"
)

// VersionString is the one-line build description printed by -version.
func VersionString() string {
    return fmt.Sprintf("goanswer %s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
