package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"吾輩は猫である", "吾輩は猫である"},
		{"a/b:c", "a_b_c"},
		{"  spaced name  ", "spaced_name"},
		{`bad*?"<>|chars`, "bad______chars"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
