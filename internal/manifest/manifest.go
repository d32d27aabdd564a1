// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package manifest describes how vellobench is packaged: its targets, the
// dependencies it needs at minimum versions, the host profile selected at
// build time and the Android target settings.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/gogpu/vellobench/internal/buildinfo"
)

// ModulePath is the module both targets are built from.
const ModulePath = "github.com/gogpu/vellobench"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("manifest: invalid")

// Package is the package metadata.
type Package struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	GoVersion   string   `yaml:"go"`
	License     string   `yaml:"license"`
	Authors     []string `yaml:"authors"`
	Description string   `yaml:"description"`
}

// TargetKind distinguishes the library from the executable.
type TargetKind string

const (
	KindLib TargetKind = "lib"
	KindBin TargetKind = "bin"
)

// Target is a build artifact.
type Target struct {
	Kind TargetKind `yaml:"kind"`
	Name string     `yaml:"name"`
	// ImportPath is the package the target is built from.
	ImportPath string `yaml:"import_path"`
}

// Dependency is a module the build needs at Min or newer.
type Dependency struct {
	Role   string `yaml:"role"`
	Module string `yaml:"module"`
	Min    string `yaml:"min"`
	// GOOS limits the dependency to one platform, empty means all.
	GOOS string `yaml:"goos,omitempty"`
}

// Manifest is the full package description.
type Manifest struct {
	Package      Package      `yaml:"package"`
	Targets      []Target     `yaml:"targets"`
	Dependencies []Dependency `yaml:"dependencies"`
	Profiles     []Profile    `yaml:"profiles"`
	Android      Android      `yaml:"android"`
}

// Toolchain is the pseudo module standing for the Go toolchain and its
// standard library.
const Toolchain = "go"

// Dependencies lists the required modules.
func Dependencies() []Dependency {
	return []Dependency{
		{Role: "error helper", Module: Toolchain, Min: "go1.25.0"},
		{Role: "command-line parser", Module: "github.com/spf13/cobra", Min: "v1.10.2"},
		{Role: "block-on helper", Module: "golang.org/x/sync", Min: "v0.7.0"},
		{Role: "GPU abstraction", Module: "github.com/gogpu/wgpu", Min: "v0.27.1"},
		{Role: "GPU profiling helper", Module: "github.com/gogpu/wgpu", Min: "v0.27.1"},
		{Role: "scene description", Module: "github.com/gogpu/gg", Min: "v0.46.11"},
		{Role: "renderer", Module: "github.com/gogpu/gg", Min: "v0.46.11"},
		AndroidGlue(),
	}
}

// Default returns the manifest of this build.
func Default() Manifest {
	return Manifest{
		Package: Package{
			Name:        "vellobench",
			Version:     buildinfo.Version,
			GoVersion:   "1.25",
			License:     "BSD-3-Clause",
			Authors:     []string{"The gogpu Authors"},
			Description: "GPU vector graphics renderer benchmark",
		},
		Targets: []Target{
			{Kind: KindLib, Name: "vellobench", ImportPath: ModulePath},
			{Kind: KindBin, Name: "vellobench", ImportPath: ModulePath + "/cmd/vellobench"},
		},
		Dependencies: Dependencies(),
		Profiles:     Profiles(),
		Android:      DefaultAndroid(),
	}
}

// Validate checks the packaging invariants: one library and one binary
// from the same module root, exactly one active profile, and consistent
// Android SDK bounds.
func (m Manifest) Validate() error {
	var errs []error

	kinds := map[TargetKind]int{}
	for _, t := range m.Targets {
		kinds[t.Kind]++
		if t.ImportPath != ModulePath && !strings.HasPrefix(t.ImportPath, ModulePath+"/") {
			errs = append(errs, fmt.Errorf("%w: target %s %q is outside module %s", ErrInvalid, t.Kind, t.ImportPath, ModulePath))
		}
	}
	if kinds[KindLib] != 1 || kinds[KindBin] != 1 {
		errs = append(errs, fmt.Errorf("%w: want one lib and one bin target, got %d lib and %d bin",
			ErrInvalid, kinds[KindLib], kinds[KindBin]))
	}

	active := 0
	for _, p := range m.Profiles {
		if p.Active {
			active++
		}
	}
	if active != 1 {
		errs = append(errs, fmt.Errorf("%w: %d active profiles, want exactly 1", ErrInvalid, active))
	}

	for _, d := range m.Dependencies {
		if _, err := parseVersion(d.Min); err != nil {
			errs = append(errs, fmt.Errorf("%w: dependency %s: %w", ErrInvalid, d.Module, err))
		}
	}

	if err := m.Android.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// WriteYAML writes m as a YAML document.
func (m Manifest) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return enc.Close()
}
