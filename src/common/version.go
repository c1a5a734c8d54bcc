package common

import (
	"golang.org/x/mod/semver"
)

const version = "v0.1.0"

func GetVersion() string {
	return semver.Canonical(version)
}
