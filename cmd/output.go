package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"galleroon/gallery"
)

// 输出格式
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// folderRecord 是 folders 命令输出的一项，没有图片时 firstImage 输出为 null
type folderRecord struct {
	Folder     string  `json:"folder" yaml:"folder"`
	FirstImage *string `json:"firstImage" yaml:"firstImage"`
}

func folderRecords(entries []gallery.FolderEntry) []folderRecord {
	records := make([]folderRecord, 0, len(entries))
	for _, e := range entries {
		r := folderRecord{Folder: e.Folder}
		if e.HasImage() {
			img := e.FirstImage
			r.FirstImage = &img
		}
		records = append(records, r)
	}
	return records
}

func checkFormat(format string, allowText bool) error {
	switch format {
	case formatYAML, formatJSON:
		return nil
	case formatText:
		if allowText {
			return nil
		}
	}
	return fmt.Errorf("不支持的输出格式 %q", format)
}

// writeStructured 以 yaml 或 json 输出 v
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("不支持的输出格式 %q", format)
	}
}

// writeLines 每行输出一项
func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
