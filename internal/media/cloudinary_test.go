package media

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v123/abc123.png", "abc123"},
		{"https://res.cloudinary.com/demo/image/upload/abc123.jpg", "abc123"},
		{"abc123.png", "abc123"},
		{"abc123", "abc123"},
	}

	for _, tc := range cases {
		if got := publicIDFromURL(tc.url); got != tc.want {
			t.Errorf("publicIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
