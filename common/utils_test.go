package common

import (
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"image.png", true},
		{"photo.JPG", true},
		{"picture.jpeg", true},
		{"animation.gif", true},
		{"modern.webp", true},
		{"Cats/A/nested.jpg", true},
		{"graphic.bmp", false},
		{"vector.svg", false},
		{"document.pdf", false},
		{".emptyFolderPlaceholder", false},
		{"A", false},
	}

	for _, test := range tests {
		result := IsImageFile(test.filename)
		if result != test.expected {
			t.Errorf("IsImageFile(%s) = %t; expected %t", test.filename, result, test.expected)
		}
	}
}

func TestFormatFolderLabel(t *testing.T) {
	tests := []struct {
		name             string
		maxDisplayLength int
		expected         string
	}{
		{"short.txt", 20, "short.txt"},
		{"very_long_filename_that_exceeds_the_limit.txt", 20, "very_long_fil....txt"},
		{"exact_length_filename.txt", 25, "exact_length_filename.txt"},
		{"just_one_char_over.txt", 20, "just_one_char....txt"},
		{"Birthday Party 2023 Backyard", 12, "Birthday ..."},
		{"猫咪的日常生活记录", 6, "猫咪的..."},
		{"Dogs", 0, "Dogs"},
		{"abcdef", 2, "ab"},
	}

	for _, test := range tests {
		result := FormatFolderLabel(test.name, test.maxDisplayLength)
		if result != test.expected {
			t.Errorf("FormatFolderLabel(%s, %d) = %s; expected %s", test.name, test.maxDisplayLength, result, test.expected)
		}
	}
}
