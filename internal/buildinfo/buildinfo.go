package buildinfo

import "runtime/debug"

// version is overridden at link time:
//
//	go build -ldflags "-X github.com/offlinefirst/clickcollect/internal/buildinfo.version=v1.2.3"
var version = "dev"

// SetVersion allows build scripts to override the CLI version information.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Version returns the semantic version or module version stamped into the binary.
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
