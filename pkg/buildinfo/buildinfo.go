// Package buildinfo contains build information.
//
// Build information can be overridden during compilation by passing
// -ldflags "-X src.abasic.dev/pkg/buildinfo.VCSOverride=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.abasic.dev/pkg/prog"
)

// VersionBase is the version of abasic. On development commits, it
// identifies the next release.
const VersionBase = "0.3.0"

// IsRelease is set to true on release commits.
const IsRelease = false

// VCSOverride overrides the VCS part of a development version, in the form of
// "<commit time>-<commit hash>". It is meant for builds where the VCS
// information is not available to the Go toolchain.
var VCSOverride string

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
}

// Value contains all the build information.
var Value = Type{
	Version:   computeVersion(),
	GoVersion: runtime.Version(),
}

func computeVersion() string {
	if IsRelease {
		return VersionBase
	}
	return devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo)
}

// devVersion returns the version of a development build. It uses the VCS
// information recorded by the Go toolchain when available.
func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	// If the main module was fetched by "go install", its version is
	// already a pseudo-version.
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	var revision, modified string
	var commitTime time.Time
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			t, err := time.Parse(time.RFC3339, setting.Value)
			if err != nil {
				return fallback
			}
			commitTime = t
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" || commitTime.IsZero() {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := fmt.Sprintf("%s-dev.0.%s-%s",
		next, commitTime.UTC().Format("20060102150405"), revision)
	if modified == "true" {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	switch {
	case f.BuildInfo:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
		}
	case f.Version:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNotSuitable
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
