package semver

import "testing"

func TestIsReactV19(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{"19.0.0", true},
		{"^19.0.0", true},
		{"~19.1.2", true},
		{"19", true},
		{"19.1.0", true},
		{">=19.0.0", true},
		{"<=19.2.0", true},
		{"18.0.0 - 19.0.0", true},
		{"18.2.0", false},
		{"20.0.0", false},
		{"^20.0.0", false},
		{"17.0.2", false},
		{"<=18.3.1", false},
	}

	for _, tc := range cases {
		if got := IsReactV19(tc.version); got != tc.want {
			t.Errorf("IsReactV19(%q) = %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestIsReactV19HeuristicFallback(t *testing.T) {
	// Unparsable specifiers degrade to the substring check instead of failing.
	cases := []struct {
		version string
		want    bool
	}{
		{"npm:react@19.0.0", true},
		{"some-19.-tag", true},
		{"latest", false},
		{"workspace:*", false},
	}

	for _, tc := range cases {
		if got := IsReactV19(tc.version); got != tc.want {
			t.Errorf("IsReactV19(%q) = %v, want %v", tc.version, got, tc.want)
		}
	}
}
