package marc_test

import (
	"testing"

	"lectern/internal/marc"
	"lectern/internal/workflows"
)

func TestReleasedToSearchworks(t *testing.T) {
	tests := []struct {
		name string
		tags []workflows.ReleaseTag
		want bool
	}{
		{"no tags", nil, false},
		{"released", []workflows.ReleaseTag{{To: "Searchworks", Release: true}}, true},
		{"other target", []workflows.ReleaseTag{{To: "Earthworks", Release: true}}, false},
		{
			"last tag wins",
			[]workflows.ReleaseTag{
				{To: "Searchworks", Release: true},
				{To: "Searchworks", Release: false},
			},
			false,
		},
		{"case insensitive target", []workflows.ReleaseTag{{To: "searchworks", Release: true}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marc.ReleasedToSearchworks(tt.tags); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestField856String(t *testing.T) {
	released := marc.NewField856("https://purl.example.edu/bc123df4567", true)
	want := "856 40 |uhttps://purl.example.edu/bc123df4567|xSDR-PURL"
	if got := released.String(); got != want {
		t.Fatalf("released field = %q, want %q", got, want)
	}

	withdrawn := marc.NewField856("https://purl.example.edu/bc123df4567", false)
	if got := withdrawn.String(); got != want+"|xwithdrawn" {
		t.Fatalf("withdrawn field = %q", got)
	}
}
