package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info describes the running binary
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags at build time
var (
	GitTag    string
	GitBranch string
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short revision, or "dev"
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) >= 12 {
		return hash[:12]
	}
	return "dev"
}

// New returns the build information for the named executable
func New(name string) Info {
	info := Info{
		Name:      name,
		Version:   Version(),
		Tag:       GitTag,
		Branch:    GitBranch,
		Hash:      setting("vcs.revision"),
		BuildTime: setting("vcs.time"),
		Modified:  setting("vcs.modified") == "true",
		Compiler:  runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		info.Source = build.Main.Path
	}
	return info
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (i Info) String() string {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	if build, ok := debug.ReadBuildInfo(); ok {
		for _, s := range build.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return ""
}
