// Package cmd 定义 galleroon 的命令行入口。
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"galleroon/config"
	"galleroon/logging"
	"galleroon/storage"
	"galleroon/ui"
)

// app 保存命令之间共享的运行时状态
type app struct {
	configPath string
	backend    string
	verbose    bool
	link       string

	cfg *config.GalleryConfig
	log zerolog.Logger

	// openBucket 按配置创建存储桶，测试中会被替换
	openBucket func(cfg *config.GalleryConfig, log zerolog.Logger) (storage.Bucket, error)
}

// NewRootCmd 创建根命令，不带子命令运行时启动桌面界面
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{openBucket: openBucket})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galleroon",
		Short: "按分类浏览图片文件夹并以幻灯片方式查看",
		Long: `galleroon 从对象存储（Supabase Storage、S3 或 Azure Blob）读取按分类组织的图片，
以文件夹卡片网格展示每个分类，并为每个文件夹提供可循环翻页的幻灯片。

不带子命令运行时打开桌面界面；子命令以文本方式输出同样的数据。`,
		Example: `  # 打开桌面界面
  galleroon

  # 直接打开某个文件夹的幻灯片
  galleroon --link "/slideshow?category=Dogs&folder=Puppies"

  # 以 JSON 输出某个分类的文件夹索引
  galleroon folders Dogs -o json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env 不存在时忽略
			_ = godotenv.Load()
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := a.bucket()
			if err != nil {
				return err
			}
			return ui.Run(ui.Options{
				Config: a.cfg,
				Bucket: bucket,
				Log:    a.log,
				Link:   a.link,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "配置文件路径（默认为用户配置目录下的 galleroon/gallery.json）")
	cmd.PersistentFlags().StringVar(&a.backend, "backend", "", "存储后端: supabase、s3 或 azure，覆盖配置文件")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "输出 debug 日志")
	cmd.Flags().StringVar(&a.link, "link", "", "启动后直接打开的幻灯片地址")

	cmd.AddCommand(
		newCategoriesCmd(a),
		newFoldersCmd(a),
		newImagesCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// setup 初始化日志并按 文件 -> 环境变量 -> 命令行参数 的顺序加载配置
func (a *app) setup(cmd *cobra.Command) error {
	a.log = logging.New(cmd.ErrOrStderr(), a.verbose)

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	a.cfg = cfg
	a.log.Debug().Str("backend", cfg.Backend).Str("bucket", cfg.Bucket).Msg("配置已加载")
	return nil
}

func (a *app) bucket() (storage.Bucket, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return a.openBucket(a.cfg, a.log)
}
