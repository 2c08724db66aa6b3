package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		parts    []string
		expected string
	}{
		{[]string{"Cats"}, "Cats"},
		{[]string{"Cats", "A"}, "Cats/A"},
		{[]string{"Cats/", "/A/", "1.jpg"}, "Cats/A/1.jpg"},
		{[]string{"", "Cats", ""}, "Cats"},
		{[]string{"Other Animals", "Birds"}, "Other Animals/Birds"},
		{nil, ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Join(test.parts...), "Join(%q)", test.parts)
	}
}

func TestUserMessage(t *testing.T) {
	base := errors.New("boom")

	folders := &ListingError{Path: "Cats", Subject: "folders", Err: base}
	assert.Equal(t, "Could not fetch folders.", UserMessage(folders))
	assert.ErrorIs(t, folders, base)

	wrapped := fmt.Errorf("load: %w", &ListingError{Path: "Cats/A", Err: base})
	assert.Equal(t, "Could not fetch images.", UserMessage(wrapped))

	empty := &EmptyResultError{Path: "Cats/B"}
	assert.Equal(t, "No images found.", UserMessage(empty))
	assert.True(t, IsEmpty(fmt.Errorf("x: %w", empty)))
	assert.False(t, IsEmpty(folders))

	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(base))
}
