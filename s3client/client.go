package s3client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	appConfig "galleroon/config" // 导入应用程序的配置包
	"galleroon/storage"
)

// listObjectsAPI 是 S3Client 用到的 s3.Client 方法子集，便于测试替换
type listObjectsAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Client 结构体封装了 AWS S3 客户端，只读地服务于一个存储桶
type S3Client struct {
	client        listObjectsAPI
	bucket        string
	publicBaseURL string
	log           zerolog.Logger
}

// NewS3Client 根据 S3 配置创建一个新的 S3Client 实例
func NewS3Client(bucket string, svcConfig appConfig.S3Config, log zerolog.Logger) (*S3Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("存储桶名称不能为空")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(regionOrDefault(svcConfig.Region)), // 即使使用自定义 Endpoint，也通常需要指定一个区域
	}
	if svcConfig.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(svcConfig.AccessKey, svcConfig.SecretKey, "")))
	} else {
		// 公开存储桶，匿名访问
		opts = append(opts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载 AWS 配置失败: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if svcConfig.Endpoint != "" {
			o.BaseEndpoint = aws.String(svcConfig.Endpoint)
			o.UsePathStyle = true // 启用路径风格访问，对于 Minio 等 S3 兼容服务很重要
		}
	})

	return &S3Client{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL(bucket, svcConfig),
		log:           log,
	}, nil
}

// List 列出 path 下的直接子项，文件夹 (CommonPrefixes) 在前，文件在后
func (sc *S3Client) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	prefix := storage.Join(path)
	if prefix != "" {
		prefix += "/"
	}
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(sc.bucket),
		Delimiter: aws.String("/"), // 用于区分文件夹
		Prefix:    aws.String(prefix),
	}
	if limit > 0 {
		// 文件夹占位对象 (key == prefix) 排在最前，多取一个
		input.MaxKeys = aws.Int32(int32(limit + 1))
	}

	sc.log.Debug().Str("path", path).Int("limit", limit).Msg("s3 list")

	output, err := sc.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("列出对象失败: %w", err)
	}
	return entriesFromOutput(output, prefix, limit), nil
}

// PublicURL 返回对象的公开访问地址
func (sc *S3Client) PublicURL(path string) string {
	return sc.publicBaseURL + "/" + escapePath(storage.Join(path))
}

// entriesFromOutput 把 ListObjectsV2 的结果转换为相对 prefix 的条目
func entriesFromOutput(output *s3.ListObjectsV2Output, prefix string, limit int) []storage.Entry {
	var entries []storage.Entry

	// 处理 CommonPrefixes (文件夹)
	for _, commonPrefix := range output.CommonPrefixes {
		name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix), "/")
		if name == "" {
			continue
		}
		entries = append(entries, storage.Entry{Name: name})
	}

	// 处理 Contents (文件)
	for _, content := range output.Contents {
		key := aws.ToString(content.Key)
		// 排除当前前缀本身（文件夹占位对象）
		if key == prefix {
			continue
		}
		e := storage.Entry{
			Name: strings.TrimPrefix(key, prefix),
			Size: aws.ToInt64(content.Size),
		}
		if content.LastModified != nil {
			e.LastModified = *content.LastModified
		}
		entries = append(entries, e)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func publicBaseURL(bucket string, svcConfig appConfig.S3Config) string {
	if svcConfig.PublicBaseURL != "" {
		return strings.TrimRight(svcConfig.PublicBaseURL, "/")
	}
	if svcConfig.Endpoint != "" {
		return strings.TrimRight(svcConfig.Endpoint, "/") + "/" + url.PathEscape(bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, regionOrDefault(svcConfig.Region))
}

func regionOrDefault(region string) string {
	if region == "" {
		return "us-east-1"
	}
	return region
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
