package purl_test

import (
	"testing"

	"lectern/internal/purl"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"druid:bc123df4567", "bc123df4567"},
		{"BC123DF4567", "bc123df4567"},
		{"  bc123df4567  ", "bc123df4567"},
	}
	for _, tt := range tests {
		if got := purl.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"bc123df4567", "druid:bc123df4567", "zw999xv0001"}
	for _, druid := range valid {
		if err := purl.Validate(druid); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", druid, err)
		}
	}

	invalid := []string{"", "bc123df456", "ab123cd4567x", "12345678901", "bc123df456a"}
	for _, druid := range invalid {
		if err := purl.Validate(druid); err == nil {
			t.Errorf("Validate(%q) = nil, want error", druid)
		}
	}
}

func TestURLFor(t *testing.T) {
	got := purl.URLFor("https://purl.example.edu/", "druid:bc123df4567")
	want := "https://purl.example.edu/bc123df4567"
	if got != want {
		t.Fatalf("URLFor = %q, want %q", got, want)
	}
	if purl.URLFor("", "bc123df4567") != "" {
		t.Fatal("expected empty URL for empty base")
	}
}
