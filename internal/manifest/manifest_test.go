// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manifest

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestExactlyOneActiveProfile(t *testing.T) {
	active := 0
	for _, p := range Profiles() {
		if p.Active {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("%d active profiles, want 1", active)
	}
	want := ProfileGeneric
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		want = ProfileAppleSilicon
	}
	if got := Active().Name; got != want {
		t.Errorf("Active() = %q, want %q", got, want)
	}
}

func TestValidateProfiles(t *testing.T) {
	tests := []struct {
		name     string
		profiles []Profile
	}{
		{"none active", []Profile{{Name: ProfileAppleSilicon}, {Name: ProfileGeneric}}},
		{"both active", []Profile{{Name: ProfileAppleSilicon, Active: true}, {Name: ProfileGeneric, Active: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			m.Profiles = tt.profiles
			if err := m.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestAndroidSDKBounds(t *testing.T) {
	tests := []struct {
		sdk     SDK
		wantErr bool
	}{
		{SDK{34, 34, 34}, false},
		{SDK{21, 34, 35}, false},
		{SDK{35, 34, 34}, true},
		{SDK{34, 35, 34}, true},
		{SDK{0, 34, 34}, true},
	}
	for _, tt := range tests {
		err := Android{SDK: tt.sdk}.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) = %v, wantErr %v", tt.sdk, err, tt.wantErr)
		}
	}
	if sdk := DefaultAndroid().SDK; sdk != (SDK{34, 34, 34}) {
		t.Errorf("DefaultAndroid() = %+v", sdk)
	}
}

func TestValidateTargets(t *testing.T) {
	m := Default()
	m.Targets = append(m.Targets, Target{Kind: KindBin, Name: "other", ImportPath: "example.com/other"})
	err := m.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate() = %v, want ErrInvalid", err)
	}
	for _, want := range []string{"outside module", "one lib and one bin"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

// The executable must only be a thin shell over packages of this module.
func TestBinaryBuiltFromModuleRoot(t *testing.T) {
	dir := filepath.Join("..", "..", "cmd", "vellobench")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	fset := token.NewFileSet()
	seen := 0
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".go") || strings.HasSuffix(e.Name(), "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, e.Name()), nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		seen++
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			first := strings.SplitN(path, "/", 2)[0]
			if strings.Contains(first, ".") && !strings.HasPrefix(path, ModulePath) {
				t.Errorf("%s imports %q from outside the module", e.Name(), path)
			}
		}
	}
	if seen == 0 {
		t.Fatalf("no Go files in %s", dir)
	}
}

func TestCheck(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.25.3",
		Main:      debug.Module{Path: ModulePath, Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "golang.org/x/sync", Version: "v0.6.0"},
			{Path: "github.com/gogpu/wgpu", Version: "v0.26.0", Replace: &debug.Module{Path: "../wgpu", Version: "v0.27.5"}},
			{Path: "golang.org/x/sys", Version: "v0.10.0"},
		},
	}

	issues := Check(info, "linux", Dependencies())
	got := map[string]string{}
	for _, is := range issues {
		got[is.Role] = is.Found
	}
	want := map[string]string{
		"block-on helper":   "v0.6.0",
		"scene description": "missing",
		"renderer":          "missing",
	}
	if len(got) != len(want) {
		t.Fatalf("issues = %v, want roles %v", issues, want)
	}
	for role, found := range want {
		if got[role] != found {
			t.Errorf("issue %q found = %q, want %q", role, got[role], found)
		}
	}

	// x/sys is only required on android.
	android := Check(info, "android", Dependencies())
	if len(android) != len(issues)+1 {
		t.Errorf("android issues = %d, want %d", len(android), len(issues)+1)
	}
}

func TestCheckToolchain(t *testing.T) {
	deps := []Dependency{{Role: "error helper", Module: Toolchain, Min: "go1.25.0"}}
	for _, tt := range []struct {
		goVersion string
		issues    int
	}{
		{"go1.25.0", 0},
		{"go1.26.1 X:nodwarf5", 0},
		{"go1.24.9", 1},
		{"devel +abc", 1},
	} {
		info := &debug.BuildInfo{GoVersion: tt.goVersion}
		if got := Check(info, "linux", deps); len(got) != tt.issues {
			t.Errorf("Check(%q) = %v, want %d issues", tt.goVersion, got, tt.issues)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	var back Manifest
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if back.Android.SDK.Target != AndroidAPILevel || len(back.Targets) != 2 {
		t.Errorf("decoded manifest = %+v", back)
	}
	if !strings.Contains(buf.String(), "goos: android") {
		t.Errorf("platform glue dependency missing from:\n%s", buf.String())
	}
}
