// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Styles must render without panicking even with no TTY attached.
	out := theme.UserBubble.Render("hello")
	if out == "" {
		t.Error("UserBubble.Render produced empty output")
	}
	if got := theme.ToastError.Render("err"); got == "" {
		t.Error("ToastError.Render produced empty output")
	}
}

func TestAdaptiveColorsHaveBothVariants(t *testing.T) {
	colors := map[string]struct{ light, dark string }{
		"Purple":      {Purple.Light, Purple.Dark},
		"Cyan":        {Cyan.Light, Cyan.Dark},
		"Rose":        {Rose.Light, Rose.Dark},
		"TextPrimary": {TextPrimary.Light, TextPrimary.Dark},
	}
	for name, c := range colors {
		if c.light == "" || c.dark == "" {
			t.Errorf("%s missing a variant: light=%q dark=%q", name, c.light, c.dark)
		}
	}
}
