// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manifest

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoBuildInfo is returned by CheckRunning when the binary carries no
// module information.
var ErrNoBuildInfo = errors.New("manifest: build info unavailable")

// Issue is a dependency that does not meet its minimum.
type Issue struct {
	Role     string `yaml:"role" json:"role"`
	Module   string `yaml:"module" json:"module"`
	Required string `yaml:"required" json:"required"`
	Found    string `yaml:"found" json:"found"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s (%s): need %s, found %s", i.Module, i.Role, i.Required, i.Found)
}

// CheckRunning checks deps against the running binary.
func CheckRunning(deps []Dependency) ([]Issue, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrNoBuildInfo
	}
	return Check(info, runtime.GOOS, deps), nil
}

// Check compares deps against the module versions in info. Dependencies
// limited to another GOOS are skipped. Modules replaced in info are
// compared at their replacement version.
func Check(info *debug.BuildInfo, goos string, deps []Dependency) []Issue {
	found := map[string]string{Toolchain: info.GoVersion}
	if info.Main.Path != "" {
		found[info.Main.Path] = info.Main.Version
	}
	for _, m := range info.Deps {
		v := m.Version
		if m.Replace != nil && m.Replace.Version != "" {
			v = m.Replace.Version
		}
		found[m.Path] = v
	}

	var issues []Issue
	for _, d := range deps {
		if d.GOOS != "" && d.GOOS != goos {
			continue
		}
		issue := Issue{Role: d.Role, Module: d.Module, Required: d.Min}
		have, ok := found[d.Module]
		if !ok {
			issue.Found = "missing"
			issues = append(issues, issue)
			continue
		}
		issue.Found = have
		ok, err := atLeast(have, d.Min)
		if err != nil {
			issue.Found = fmt.Sprintf("%s (%v)", have, err)
		}
		if !ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

func atLeast(have, minimum string) (bool, error) {
	hv, err := parseVersion(have)
	if err != nil {
		return false, err
	}
	mv, err := parseVersion(minimum)
	if err != nil {
		return false, err
	}
	return !hv.LessThan(mv), nil
}

// parseVersion accepts module versions ("v1.2.3") and toolchain versions
// ("go1.25.0", "go1.25").
func parseVersion(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "go"), "v")
	// Toolchain suffixes such as "go1.25.0 X:nodwarf5" are not semver.
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("parse version %q: %w", v, err)
	}
	return sv, nil
}
