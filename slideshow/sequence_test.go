package slideshow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleroon/logging"
	"galleroon/storage"
	"galleroon/storage/storagetest"
)

func TestLoadSequenceKeepsStorageOrder(t *testing.T) {
	bucket := storagetest.NewBucket().Set("Dogs/Puppies", "b.jpg", "a.jpg", "c.png")

	urls, err := LoadSequence(context.Background(), bucket, "Dogs", "Puppies", logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		storagetest.BaseURL + "Dogs/Puppies/b.jpg",
		storagetest.BaseURL + "Dogs/Puppies/a.jpg",
		storagetest.BaseURL + "Dogs/Puppies/c.png",
	}, urls)

	calls := bucket.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, storagetest.Call{Path: "Dogs/Puppies", Limit: ImageListLimit}, calls[0])
}

func TestLoadSequenceListingError(t *testing.T) {
	bucket := storagetest.NewBucket().Fail("Cats/Kittens", errors.New("boom"))

	urls, err := LoadSequence(context.Background(), bucket, "Cats", "Kittens", logging.Nop())
	assert.Nil(t, urls)

	var listingErr *storage.ListingError
	require.ErrorAs(t, err, &listingErr)
	assert.Equal(t, "Cats/Kittens", listingErr.Path)
	assert.Equal(t, "Could not fetch images.", storage.UserMessage(err))
}

func TestLoadSequenceEmpty(t *testing.T) {
	urls, err := LoadSequence(context.Background(), storagetest.NewBucket(), "Cats", "Kittens", logging.Nop())
	assert.Nil(t, urls)
	assert.True(t, storage.IsEmpty(err))
	assert.Equal(t, storage.NoImagesMessage, storage.UserMessage(err))
}

func TestLinkRoundTrip(t *testing.T) {
	tests := []struct {
		category, folder string
	}{
		{"Dogs", "Puppies"},
		{"Other Animals", "Red & Blue"},
		{"Cats", "a/b?c=d"},
		{"Birds", "ünïcödé"},
	}
	for _, test := range tests {
		link := Link(test.category, test.folder)
		category, folder, err := ParseLink(link)
		require.NoError(t, err, link)
		assert.Equal(t, test.category, category)
		assert.Equal(t, test.folder, folder)
	}
}

func TestParseLinkErrors(t *testing.T) {
	_, _, err := ParseLink("/slideshow?category=Dogs")
	assert.ErrorIs(t, err, ErrMissingSelection)

	_, _, err = ParseLink("/gallery?category=Dogs&folder=Puppies")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingSelection)
}
