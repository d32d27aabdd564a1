// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manifest

// Profile is a host-specific selection of the scene and renderer stack.
type Profile struct {
	Name   string `yaml:"name"`
	GOOS   string `yaml:"goos,omitempty"`
	GOARCH string `yaml:"goarch,omitempty"`
	// Backends is the wgpu backend set the device opens by default.
	Backends string `yaml:"backends"`
	Active   bool   `yaml:"active"`
}

// Profile names.
const (
	ProfileAppleSilicon = "apple-silicon"
	ProfileGeneric      = "generic"
)

// Profiles returns every profile, marking the one compiled in.
// activeProfile is set by a build-constrained file.
func Profiles() []Profile {
	ps := []Profile{
		{Name: ProfileAppleSilicon, GOOS: "darwin", GOARCH: "arm64", Backends: "metal"},
		{Name: ProfileGeneric, Backends: "primary"},
	}
	for i := range ps {
		ps[i].Active = ps[i].Name == activeProfile
	}
	return ps
}

// Active returns the profile this binary was built with.
func Active() Profile {
	for _, p := range Profiles() {
		if p.Active {
			return p
		}
	}
	return Profile{}
}
