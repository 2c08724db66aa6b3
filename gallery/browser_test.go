package gallery

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"galleroon/config"
	"galleroon/logging"
	"galleroon/storage/storagetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	views []View
}

func (r *recorder) record(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) all() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]View(nil), r.views...)
}

func TestBrowserStartLoadsFirstCategory(t *testing.T) {
	bucket := storagetest.NewBucket().
		Set("Dogs", "Puppies").
		Set("Dogs/Puppies", "p.jpg")
	b := NewBrowser(bucket, config.NewCategories(config.DefaultCategoryNames...), logging.Nop())

	rec := &recorder{}
	b.Store().Subscribe(rec.record)

	require.NoError(t, b.Start())
	b.Wait()

	views := rec.all()
	require.Len(t, views, 2)
	assert.True(t, views[0].Loading)
	assert.Equal(t, "Dogs", views[0].Category)

	final := b.Store().Get()
	assert.False(t, final.Loading)
	assert.NoError(t, final.Err)
	assert.Equal(t, []FolderEntry{{Folder: "Puppies", FirstImage: storagetest.BaseURL + "Dogs/Puppies/p.jpg"}}, final.Entries)
}

func TestBrowserReportsListingError(t *testing.T) {
	bucket := storagetest.NewBucket().Fail("Cats", errors.New("boom"))
	b := NewBrowser(bucket, config.NewCategories("Cats"), logging.Nop())

	require.NoError(t, b.Select("Cats"))
	b.Wait()

	v := b.Store().Get()
	assert.Error(t, v.Err)
	assert.Equal(t, "Could not fetch folders.", v.Message)
	assert.Empty(t, v.Entries)
}

func TestBrowserEmptyCategory(t *testing.T) {
	b := NewBrowser(storagetest.NewBucket(), config.NewCategories("Others"), logging.Nop())

	require.NoError(t, b.Select("Others"))
	b.Wait()

	v := b.Store().Get()
	assert.True(t, v.Empty())
	assert.Equal(t, "No images found.", v.Message)
}

func TestBrowserRejectsUnknownCategory(t *testing.T) {
	bucket := storagetest.NewBucket()
	b := NewBrowser(bucket, config.NewCategories("Cats"), logging.Nop())

	assert.ErrorIs(t, b.Select("Birds"), ErrUnknownCategory)
	assert.Empty(t, bucket.Calls())

	empty := NewBrowser(bucket, config.NewCategories(), logging.Nop())
	assert.ErrorIs(t, empty.Start(), ErrUnknownCategory)
}

func TestBrowserDropsStaleResponse(t *testing.T) {
	inner := storagetest.NewBucket().
		Set("Cats", "Old").
		Set("Cats/Old", "o.jpg").
		Set("Dogs", "New").
		Set("Dogs/New", "n.jpg")
	gate := storagetest.NewGate(inner, "Cats")
	b := NewBrowser(gate, config.NewCategories("Cats", "Dogs"), logging.Nop())

	dogsDone := make(chan struct{})
	var once sync.Once
	b.Store().Subscribe(func(v View) {
		if v.Category == "Dogs" && !v.Loading {
			once.Do(func() { close(dogsDone) })
		}
	})

	require.NoError(t, b.Select("Cats"))
	require.NoError(t, b.Select("Dogs"))

	// Dogs 完成后再放行 Cats，Cats 的结果已过期
	<-dogsDone
	gate.Release("Cats")
	b.Wait()

	v := b.Store().Get()
	assert.Equal(t, "Dogs", v.Category)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, "New", v.Entries[0].Folder)
}
