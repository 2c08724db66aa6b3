package config

import (
	"encoding/json" // 导入 json 包用于 JSON 序列化和反序列化
	"fmt"
	"os"            // 导入 os 包用于文件系统操作
	"path/filepath" // 导入 path/filepath 包用于路径操作
	"strings"
)

// 支持的存储后端
const (
	BackendSupabase = "supabase"
	BackendS3       = "s3"
	BackendAzure    = "azure"
)

// 默认值
const (
	DefaultBucket         = "gallery"
	DefaultThumbnailEdge  = 320
	DefaultSlideImageEdge = 1600
	DefaultHTTPRetries    = 2
)

// DefaultCategoryNames 是未配置分类时使用的分类列表
var DefaultCategoryNames = []string{"Dogs", "Cats", "Palm", "Paws", "Other Animals", "Others"}

// SupabaseConfig 定义 Supabase Storage 的连接信息
type SupabaseConfig struct {
	URL string `json:"url"` // 项目地址，例如："https://xyz.supabase.co"
	Key string `json:"key"` // anon 或 service key
}

// S3Config 定义 S3 或 S3 兼容服务的连接信息
type S3Config struct {
	Endpoint      string `json:"endpoint"`      // S3 服务地址，例如："http://localhost:9000"，为空时使用 AWS
	Region        string `json:"region"`        // 区域，默认 us-east-1
	AccessKey     string `json:"accessKey"`     // 访问密钥 ID
	SecretKey     string `json:"secretKey"`     // 秘密访问密钥
	PublicBaseURL string `json:"publicBaseUrl"` // 公开访问地址前缀，为空时由 Endpoint 推导
}

// AzureConfig 定义 Azure Blob 容器的连接信息
type AzureConfig struct {
	ContainerURL  string `json:"containerUrl"`  // 容器地址，可带 SAS 查询串
	PublicBaseURL string `json:"publicBaseUrl"` // 公开访问地址前缀，为空时使用去掉 SAS 的容器地址
}

// GalleryConfig 是图库的完整配置
type GalleryConfig struct {
	Backend        string         `json:"backend"`
	Bucket         string         `json:"bucket"`
	Categories     []string       `json:"categories"`
	ThumbnailEdge  int            `json:"thumbnailEdge"`
	SlideImageEdge int            `json:"slideImageEdge"`
	HTTPRetries    int            `json:"httpRetries"`
	FontPath       string         `json:"fontPath,omitempty"` // 界面字体文件，为空时使用 fyne 默认字体
	Supabase       SupabaseConfig `json:"supabase"`
	S3             S3Config       `json:"s3"`
	Azure          AzureConfig    `json:"azure"`
}

// Default 返回默认配置
func Default() *GalleryConfig {
	return &GalleryConfig{
		Backend:        BackendSupabase,
		Bucket:         DefaultBucket,
		Categories:     append([]string(nil), DefaultCategoryNames...),
		ThumbnailEdge:  DefaultThumbnailEdge,
		SlideImageEdge: DefaultSlideImageEdge,
		HTTPRetries:    DefaultHTTPRetries,
		S3:             S3Config{Region: "us-east-1"},
	}
}

// FilePath 返回配置文件的完整路径
func FilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "galleroon", "gallery.json"), nil
}

// LoadConfig 从文件中加载配置，path 为空时使用默认路径。
// 文件不存在时返回默认配置而不是错误。
func LoadConfig(path string) (*GalleryConfig, error) {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// SaveConfig 将配置保存到文件，path 为空时使用默认路径
func SaveConfig(path string, cfg *GalleryConfig) error {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return err
		}
		path = p
	}
	// 确保目录存在
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ") // 使用 MarshalIndent 格式化输出，便于阅读
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv 用环境变量覆盖配置，getenv 通常为 os.Getenv
func (c *GalleryConfig) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Backend, "GALLEROON_BACKEND")
	set(&c.Bucket, "GALLEROON_BUCKET")
	set(&c.Supabase.URL, "GALLEROON_SUPABASE_URL")
	set(&c.Supabase.Key, "GALLEROON_SUPABASE_KEY")
	set(&c.S3.Endpoint, "GALLEROON_S3_ENDPOINT")
	set(&c.S3.Region, "GALLEROON_S3_REGION")
	set(&c.S3.AccessKey, "GALLEROON_S3_ACCESS_KEY")
	set(&c.S3.SecretKey, "GALLEROON_S3_SECRET_KEY")
	set(&c.S3.PublicBaseURL, "GALLEROON_S3_PUBLIC_BASE_URL")
	set(&c.Azure.ContainerURL, "GALLEROON_AZURE_CONTAINER_URL")
	set(&c.Azure.PublicBaseURL, "GALLEROON_AZURE_PUBLIC_BASE_URL")
	set(&c.FontPath, "GALLEROON_FONT")
}

// Validate 检查所选后端需要的字段
func (c *GalleryConfig) Validate() error {
	switch c.Backend {
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("supabase 后端需要配置 url 和 key")
		}
		if c.Bucket == "" {
			return fmt.Errorf("supabase 后端需要配置 bucket")
		}
	case BackendS3:
		if c.Bucket == "" {
			return fmt.Errorf("s3 后端需要配置 bucket")
		}
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			return fmt.Errorf("s3 的 accessKey 和 secretKey 必须同时配置")
		}
	case BackendAzure:
		if c.Azure.ContainerURL == "" {
			return fmt.Errorf("azure 后端需要配置 containerUrl")
		}
	default:
		return fmt.Errorf("未知的存储后端 %q", c.Backend)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("至少需要一个分类")
	}
	return nil
}

// CategorySet 由配置构建不可变的分类集合
func (c *GalleryConfig) CategorySet() Categories {
	return NewCategories(c.Categories...)
}

func (c *GalleryConfig) fillDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.Bucket == "" {
		c.Bucket = d.Bucket
	}
	if len(c.Categories) == 0 {
		c.Categories = d.Categories
	}
	if c.ThumbnailEdge <= 0 {
		c.ThumbnailEdge = d.ThumbnailEdge
	}
	if c.SlideImageEdge <= 0 {
		c.SlideImageEdge = d.SlideImageEdge
	}
	if c.HTTPRetries < 0 {
		c.HTTPRetries = 0
	}
	if c.S3.Region == "" {
		c.S3.Region = d.S3.Region
	}
}
