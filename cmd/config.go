package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"galleroon/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "查看或初始化配置文件",
	}
	cmd.AddCommand(newConfigPathCmd(a), newConfigInitCmd(a))
	return cmd
}

func (a *app) resolvedConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.FilePath()
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "输出配置文件路径",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolvedConfigPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "写入默认配置文件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("配置文件 %s 已存在，使用 --force 覆盖", path)
			}
			if err := config.SaveConfig(path, config.Default()); err != nil {
				return fmt.Errorf("写入配置文件失败: %w", err)
			}
			a.log.Info().Str("path", path).Msg("已写入默认配置")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "覆盖已存在的配置文件")
	return cmd
}
