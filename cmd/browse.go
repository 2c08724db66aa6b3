package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"galleroon/gallery"
	"galleroon/slideshow"
	"galleroon/storage"
)

func newCategoriesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "列出配置的分类",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, true); err != nil {
				return err
			}
			categories := a.cfg.CategorySet().All()
			if format == formatText {
				return writeLines(cmd.OutOrStdout(), categories)
			}
			return writeStructured(cmd.OutOrStdout(), format, categories)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "输出格式: text、yaml 或 json")
	return cmd
}

func newFoldersCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "folders <category>",
		Short: "输出分类的文件夹索引（文件夹名和第一张图片）",
		Example: `  galleroon folders Dogs
  galleroon folders "Other Animals" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, false); err != nil {
				return err
			}
			category := args[0]
			if !a.cfg.CategorySet().Contains(category) {
				return fmt.Errorf("%w: %q", gallery.ErrUnknownCategory, category)
			}

			bucket, err := a.bucket()
			if err != nil {
				return err
			}
			entries, err := gallery.BuildFolderIndex(cmd.Context(), bucket, category, a.log)
			if err != nil {
				return errors.New(storage.UserMessage(err))
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), storage.NoImagesMessage)
			}
			return writeStructured(cmd.OutOrStdout(), format, folderRecords(entries))
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "输出格式: yaml 或 json")
	return cmd
}

func newImagesCmd(a *app) *cobra.Command {
	var (
		format string
		link   string
	)

	cmd := &cobra.Command{
		Use:   "images [<category> <folder>]",
		Short: "按幻灯片顺序输出文件夹中图片的公开地址",
		Example: `  galleroon images Dogs Puppies
  galleroon images --link "/slideshow?category=Dogs&folder=Puppies"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if link != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, true); err != nil {
				return err
			}

			var category, folder string
			if link != "" {
				c, f, err := slideshow.ParseLink(link)
				if err != nil {
					return err
				}
				category, folder = c, f
			} else {
				category, folder = args[0], args[1]
			}

			bucket, err := a.bucket()
			if err != nil {
				return err
			}
			urls, err := slideshow.LoadSequence(cmd.Context(), bucket, category, folder, a.log)
			if storage.IsEmpty(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), storage.NoImagesMessage)
				urls = []string{}
			} else if err != nil {
				return errors.New(storage.UserMessage(err))
			}

			if format == formatText {
				return writeLines(cmd.OutOrStdout(), urls)
			}
			return writeStructured(cmd.OutOrStdout(), format, urls)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "输出格式: text、yaml 或 json")
	cmd.Flags().StringVar(&link, "link", "", "幻灯片地址，例如 /slideshow?category=Dogs&folder=Puppies")
	return cmd
}
