// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !android

package platform

import "errors"

// RaisePriority is only implemented on Android.
func RaisePriority() error {
	return errors.ErrUnsupported
}
