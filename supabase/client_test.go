package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleroon/gallery"
	"galleroon/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "gallery", "anon-key", WithRetries(0))
	require.NoError(t, err)
	return c
}

func TestListSendsExpectedRequest(t *testing.T) {
	var got listRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/list/gallery", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"A","id":null,"metadata":null},
			{"name":".emptyFolderPlaceholder","id":"x","metadata":{"size":0}},
			{"name":"1.jpg","id":"y","updated_at":"2024-05-01T10:00:00Z","metadata":{"size":2048}}
		]`))
	})

	entries, err := c.List(context.Background(), "/Cats/", 100)
	require.NoError(t, err)

	assert.Equal(t, "Cats", got.Prefix)
	assert.Equal(t, 101, got.Limit)
	assert.Equal(t, "name", got.SortBy.Column)
	assert.Equal(t, "asc", got.SortBy.Order)

	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, "1.jpg", entries[1].Name)
	assert.Equal(t, int64(2048), entries[1].Size)
	assert.Equal(t, 2024, entries[1].LastModified.Year())
}

func TestListReportsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"404","error":"Bucket not found","message":"Bucket not found"}`))
	})

	_, err := c.List(context.Background(), "Cats", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bucket not found")
	assert.Contains(t, err.Error(), "400")
}

func TestListReportsRetryableStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.List(context.Background(), "Cats", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestListRejectsMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := c.List(context.Background(), "Cats", 100)
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	c, err := NewClient("https://xyz.supabase.co/", "gallery", "k")
	require.NoError(t, err)

	tests := []struct {
		path     string
		expected string
	}{
		{"Cats/A/1.jpg", "https://xyz.supabase.co/storage/v1/object/public/gallery/Cats/A/1.jpg"},
		{"Other Animals/Birds/owl 1.png", "https://xyz.supabase.co/storage/v1/object/public/gallery/Other%20Animals/Birds/owl%201.png"},
		{storage.Join("Dogs", "", "x.jpg"), "https://xyz.supabase.co/storage/v1/object/public/gallery/Dogs/x.jpg"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, c.PublicURL(test.path))
	}
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient("not a url", "gallery", "k")
	assert.Error(t, err)

	_, err = NewClient("https://xyz.supabase.co", "", "k")
	assert.Error(t, err)
}

// folderServer 按 Supabase 的方式列举：按名称排序后应用 offset 和 limit
func folderServer(t *testing.T, tree map[string][]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		names := append([]string(nil), tree[req.Prefix]...)
		sort.Strings(names)
		if req.Offset < len(names) {
			names = names[req.Offset:]
		} else {
			names = nil
		}
		if req.Limit > 0 && len(names) > req.Limit {
			names = names[:req.Limit]
		}

		objects := make([]map[string]any, 0, len(names))
		for _, n := range names {
			objects = append(objects, map[string]any{"name": n, "id": n, "metadata": map[string]any{"size": 1}})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(objects))
	}
}

func TestListSkipsPlaceholderWithinLimit(t *testing.T) {
	c := newTestClient(t, folderServer(t, map[string][]string{
		"Cats/A": {"2.jpg", ".emptyFolderPlaceholder", "1.jpg"},
	}))

	entries, err := c.List(context.Background(), "Cats/A", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.jpg", entries[0].Name)

	entries, err = c.List(context.Background(), "Cats/A", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2.jpg", entries[1].Name)
}

func TestBuildFolderIndexWithPlaceholders(t *testing.T) {
	c := newTestClient(t, folderServer(t, map[string][]string{
		"Cats":   {"B", "A"},
		"Cats/A": {".emptyFolderPlaceholder", "1.jpg", "2.jpg"},
		"Cats/B": {".emptyFolderPlaceholder"},
	}))

	entries, err := gallery.BuildFolderIndex(context.Background(), c, "Cats", zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, gallery.FolderEntry{Folder: "A", FirstImage: c.PublicURL("Cats/A/1.jpg")}, entries[0])
	assert.Equal(t, gallery.FolderEntry{Folder: "B"}, entries[1])
}
