// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package theme reports whether the desktop shell uses a dark or light theme and
// notifies callers when that changes. The tray icon is repainted to stay visible
// against the taskbar.
//
// On Windows the answer comes from the SystemUsesLightTheme registry value; other
// platforms report dark and never notify.
package theme

import "context"

// Func receives the new theme after a change.
type Func func(dark bool)

// Dark reports whether the shell currently uses a dark theme.
func Dark() (bool, error) { return dark() }

// Watch blocks until ctx is done, calling fn whenever the theme flips. It
// returns nil when ctx ends and an error if the watch could not be set up.
func Watch(ctx context.Context, fn Func) error { return watch(ctx, fn) }
