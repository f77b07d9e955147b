// Package buildinfo reports the pydocs version.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/pydocs/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/pydocs/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/pydocs/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install" carry no ldflags; for those the module
// version and VCS stamp recorded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build information.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Get returns ldflags values, filled in from the embedded build info where
// they were left at their defaults.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fill(info, bi)
	}
	return info
}

func fill(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	return info
}

// Template returns the version template for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\ngo: %s\n", i.Version, i.Commit, i.Date, i.GoVersion)
}
