// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package manifest

import "fmt"

// Android holds the settings of the Android build.
type Android struct {
	SDK SDK `yaml:"sdk"`
}

// SDK is the range of Android API levels the APK declares.
type SDK struct {
	Min    int `yaml:"min"`
	Target int `yaml:"target"`
	Max    int `yaml:"max"`
}

// AndroidAPILevel is the only API level the benchmark is built for.
const AndroidAPILevel = 34

// DefaultAndroid pins min, target and max to AndroidAPILevel.
func DefaultAndroid() Android {
	return Android{SDK: SDK{Min: AndroidAPILevel, Target: AndroidAPILevel, Max: AndroidAPILevel}}
}

// Validate requires 1 <= min <= target <= max.
func (a Android) Validate() error {
	s := a.SDK
	if s.Min < 1 || s.Min > s.Target || s.Target > s.Max {
		return fmt.Errorf("%w: android sdk bounds must satisfy 1 <= min <= target <= max, got min=%d target=%d max=%d",
			ErrInvalid, s.Min, s.Target, s.Max)
	}
	return nil
}

// AndroidGlue is the platform glue dependency used only on Android.
func AndroidGlue() Dependency {
	return Dependency{Role: "platform glue", Module: "golang.org/x/sys", Min: "v0.20.0", GOOS: "android"}
}
