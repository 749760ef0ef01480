// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---dashes___here", "multiple-dashes-here"},
		{"Café au lait", "cafe-au-lait"},
		{"Crème Brûlée", "creme-brulee"},
		{"Tom & Jerry", "tom-and-jerry"},
		{"Top 10 Go Tips (2025)", "top-10-go-tips-2025"},
		{"100% Done", "100-percent-done"},
		{"日本語", ""},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithFallback(t *testing.T) {
	if got := WithFallback("???", "post"); got != "post" {
		t.Errorf("WithFallback() = %q, want %q", got, "post")
	}
	if got := WithFallback("Go Tips", "post"); got != "go-tips" {
		t.Errorf("WithFallback() = %q, want %q", got, "go-tips")
	}
}
