package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, BackendSupabase, cfg.Backend)
	assert.Equal(t, DefaultBucket, cfg.Bucket)
	assert.Equal(t, DefaultCategoryNames, cfg.Categories)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gallery.json")
	cfg := Default()
	cfg.Backend = BackendS3
	cfg.Bucket = "photos"
	cfg.Categories = []string{"Birds"}
	cfg.S3.Endpoint = "http://localhost:9000"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigFillsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend":"azure","thumbnailEdge":0,"categories":[]}`), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendAzure, cfg.Backend)
	assert.Equal(t, DefaultThumbnailEdge, cfg.ThumbnailEdge)
	assert.Equal(t, DefaultCategoryNames, cfg.Categories)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GALLEROON_BACKEND":      "s3",
		"GALLEROON_S3_ENDPOINT":  "http://minio:9000",
		"GALLEROON_SUPABASE_KEY": "  ",
	}
	cfg := Default()
	cfg.Supabase.Key = "keep"
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, BackendS3, cfg.Backend)
	assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	assert.Equal(t, "keep", cfg.Supabase.Key)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GalleryConfig)
		wantErr bool
	}{
		{"supabase ok", func(c *GalleryConfig) { c.Supabase = SupabaseConfig{URL: "https://x.supabase.co", Key: "k"} }, false},
		{"supabase missing key", func(c *GalleryConfig) { c.Supabase.URL = "https://x.supabase.co" }, true},
		{"s3 anonymous", func(c *GalleryConfig) { c.Backend = BackendS3 }, false},
		{"s3 half credentials", func(c *GalleryConfig) { c.Backend = BackendS3; c.S3.AccessKey = "a" }, true},
		{"azure missing url", func(c *GalleryConfig) { c.Backend = BackendAzure }, true},
		{"azure ok", func(c *GalleryConfig) { c.Backend = BackendAzure; c.Azure.ContainerURL = "https://a.blob.core.windows.net/gallery" }, false},
		{"unknown backend", func(c *GalleryConfig) { c.Backend = "ftp" }, true},
		{"no categories", func(c *GalleryConfig) { c.Backend = BackendS3; c.Categories = nil }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	c := NewCategories("Dogs", " Cats ", "", "Dogs", "Palm")

	assert.Equal(t, []string{"Dogs", "Cats", "Palm"}, c.All())
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Contains("Cats"))
	assert.False(t, c.Contains("Birds"))

	first, ok := c.First()
	assert.True(t, ok)
	assert.Equal(t, "Dogs", first)

	// 修改返回的副本不影响集合
	all := c.All()
	all[0] = "Changed"
	assert.Equal(t, "Dogs", c.All()[0])

	_, ok = NewCategories().First()
	assert.False(t, ok)
}
