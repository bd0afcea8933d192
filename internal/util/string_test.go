// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunesASCII(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := TruncateRunes(tt.input, tt.max); got != tt.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestTruncateRunesUTF8(t *testing.T) {
	// 6 runes, 18 bytes
	s := "日本語テスト"
	got := TruncateRunes(s, 5)
	if got != "日本..." {
		t.Errorf("TruncateRunes(%q, 5) = %q, want 日本...", s, got)
	}
	if got := TruncateRunes(s, 6); got != s {
		t.Errorf("TruncateRunes(%q, 6) = %q, want unchanged", s, got)
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("hello world", 5); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
	if got := TruncateRunesNoEllipsis("héllo", 2); got != "hé" {
		t.Errorf("got %q, want hé", got)
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters are two columns wide.
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", got)
	}
	if got := TruncateWidth("日本語テスト", 7); StringWidth(got) > 7 {
		t.Errorf("TruncateWidth result %q wider than 7", got)
	}
	if got := TruncateWidth("short", 10); got != "short" {
		t.Errorf("TruncateWidth(short, 10) = %q, want unchanged", got)
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("héllo"); got != 5 {
		t.Errorf("RuneLen(héllo) = %d, want 5", got)
	}
	if got := RuneLen(""); got != 0 {
		t.Errorf("RuneLen() = %d, want 0", got)
	}
}
