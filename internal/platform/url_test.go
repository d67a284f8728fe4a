package platform

import "testing"

func TestIsValidVideoURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", true},
		{"", false},
		{"not a url", false},
		{"https://vimeo.com/12345", false},
		{"https://www.youtube.com/playlist?list=PL123", false},
		{"ftp://youtube.com/watch?v=dQw4w9WgXcQ", false},
	}

	for _, test := range tests {
		result := IsValidVideoURL(test.url)
		if result != test.expected {
			t.Errorf("IsValidVideoURL(%q) = %v, expected %v", test.url, result, test.expected)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url      string
		id       string
		ok       bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1&index=2", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=aBcDeFgHiJ0", "aBcDeFgHiJ0", true},
		{"", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"plain text with no id", "", false},
	}

	for _, test := range tests {
		id, ok := ExtractVideoID(test.url)
		if ok != test.ok || id != test.id {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), expected (%q, %v)", test.url, id, ok, test.id, test.ok)
		}
	}
}
