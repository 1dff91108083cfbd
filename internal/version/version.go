package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Build metadata; override with -ldflags "-X chearmyp/internal/version.Version=...".
var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the version report printed by `chearmyp version`.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
}

// Get collects the build metadata. A missing commit or date is taken from
// the VCS stamp the Go toolchain embeds in the binary.
func Get() Info {
	info := Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// Colorize paints major.minor.patch; a suffix after '-' stays plain.
func Colorize(v string) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Pretty renders the multi-line human report.
func (i Info) Pretty() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "chearmyp %s\n", Colorize(i.Version))
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "commit:  %s\n", i.GitCommit)
	}
	if i.GitMessage != "" {
		fmt.Fprintf(&sb, "message: %s\n", i.GitMessage)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, "built:   %s\n", i.BuildDate)
	}
	fmt.Fprintf(&sb, "go:      %s\n", i.GoVersion)
	return sb.String()
}
