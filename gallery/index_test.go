package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleroon/logging"
	"galleroon/storage"
	"galleroon/storage/storagetest"
)

func url(path string) string { return storagetest.BaseURL + path }

func TestBuildFolderIndexNested(t *testing.T) {
	bucket := storagetest.NewBucket().
		Set("Cats", "A", "B").
		Set("Cats/A", "1.jpg", "2.jpg", "3.jpg").
		Set("Cats/B")

	entries, err := BuildFolderIndex(context.Background(), bucket, "Cats", logging.Nop())
	require.NoError(t, err)

	want := []FolderEntry{
		{Folder: "A", FirstImage: url("Cats/A/1.jpg")},
		{Folder: "B"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("BuildFolderIndex mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, entries[1].HasImage())

	calls := bucket.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, storagetest.Call{Path: "Cats", Limit: 100}, calls[0])
	assert.Equal(t, storagetest.Call{Path: "Cats/A", Limit: 1}, calls[1])
	assert.Equal(t, storagetest.Call{Path: "Cats/B", Limit: 1}, calls[2])
}

func TestBuildFolderIndexPreservesListerOrder(t *testing.T) {
	bucket := storagetest.NewBucket().
		Set("Dogs", "Zed", "Alpha", "Mid").
		Set("Dogs/Zed", "z.jpg").
		Set("Dogs/Alpha", "a.jpg").
		Set("Dogs/Mid", "m.jpg")

	entries, err := BuildFolderIndex(context.Background(), bucket, "Dogs", logging.Nop())
	require.NoError(t, err)

	var folders []string
	for _, e := range entries {
		folders = append(folders, e.Folder)
	}
	assert.Equal(t, []string{"Zed", "Alpha", "Mid"}, folders)
}

func TestBuildFolderIndexSkipsFailedSubfolder(t *testing.T) {
	bucket := storagetest.NewBucket().
		Set("Palm", "A", "B", "C").
		Set("Palm/A", "a.jpg").
		Fail("Palm/B", errors.New("timeout")).
		Set("Palm/C", "c.jpg")

	entries, err := BuildFolderIndex(context.Background(), bucket, "Palm", logging.Nop())
	require.NoError(t, err)

	want := []FolderEntry{
		{Folder: "A", FirstImage: url("Palm/A/a.jpg")},
		{Folder: "C", FirstImage: url("Palm/C/c.jpg")},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("BuildFolderIndex mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFolderIndexTopLevelFailure(t *testing.T) {
	boom := errors.New("unauthorized")
	bucket := storagetest.NewBucket().Fail("Paws", boom)

	entries, err := BuildFolderIndex(context.Background(), bucket, "Paws", logging.Nop())
	require.Error(t, err)
	assert.Nil(t, entries)

	var le *storage.ListingError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Paws", le.Path)
	assert.Equal(t, "Could not fetch folders.", le.UserMessage())
	assert.ErrorIs(t, err, boom)
}

// flatBucket 第一次列举返回空，第二次返回图片，模拟平铺目录
type flatBucket struct {
	*storagetest.Bucket
	files []storage.Entry
	err   error
	n     int
}

func (b *flatBucket) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	b.n++
	if b.n == 1 {
		return nil, nil
	}
	return b.files, b.err
}

func TestBuildFolderIndexFlatCategory(t *testing.T) {
	bucket := &flatBucket{
		Bucket: storagetest.NewBucket(),
		files:  []storage.Entry{{Name: "x.jpg"}, {Name: "y.jpg"}, {Name: "z.png"}},
	}

	entries, err := BuildFolderIndex(context.Background(), bucket, "Others", logging.Nop())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "Others", e.Folder)
	}
	assert.Equal(t, url("Others/y.jpg"), entries[1].FirstImage)
	assert.Equal(t, 2, bucket.n)
}

func TestBuildFolderIndexFlatFailure(t *testing.T) {
	bucket := &flatBucket{Bucket: storagetest.NewBucket(), err: errors.New("reset")}

	_, err := BuildFolderIndex(context.Background(), bucket, "Others", logging.Nop())
	var le *storage.ListingError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Could not fetch images.", le.UserMessage())
}

func TestBuildFolderIndexEmptyCategory(t *testing.T) {
	entries, err := BuildFolderIndex(context.Background(), storagetest.NewBucket(), "Others", logging.Nop())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
