// Package version provides filter document version checks.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Current is the document format version written by this build.
const Current = "1.0"

// Supported is the range of document versions this build can read.
const Supported = ">=1.0.0, <2.0.0"

var supported = semver.MustParse(Current)

// Check reports whether a document written with version v can be read.
// An empty version predates versioning and is accepted.
func Check(v string) error {
	if v == "" {
		return nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid document version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(Supported)
	if err != nil {
		return err
	}
	if !c.Check(sv) {
		return fmt.Errorf("unsupported document version %s (want %s)", v, Supported)
	}
	return nil
}

// Compare returns -1, 0, or 1 based on comparing a vs b.
// Non-semver strings sort after semver and then lexically.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}

	// Semver wins over non-semver in sorting
	if errA == nil {
		return -1
	}
	if errB == nil {
		return 1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Newer reports whether v is newer than the format this build writes.
// An empty version is never newer.
func Newer(v string) bool {
	return v != "" && Compare(v, supported.Original()) > 0
}
