package main

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the application version, set via ldflags at build time.
var Version = "dev"

// Commit is the git commit hash, set via ldflags at build time.
var Commit = "unknown"

// BuildTime is the build timestamp, set via ldflags at build time.
var BuildTime = "unknown"

// displayVersion returns v in canonical semver form, or v unchanged when it is not a release version.
func displayVersion(v string) string {
	canon := strings.TrimSpace(v)
	if !strings.HasPrefix(canon, "v") {
		canon = "v" + canon
	}
	if !semver.IsValid(canon) {
		return v
	}
	return semver.Canonical(canon)
}
