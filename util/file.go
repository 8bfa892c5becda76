package util

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteLines writes the lines to savePath, one per line, creating parent
// folders as needed.
func WriteLines(savePath string, lines ...string) error {
	if err := ensureDir(savePath); err != nil {
		return err
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return os.WriteFile(savePath, []byte(content), 0644)
}

// AppendLines appends the lines to savePath, creating it if needed.
func AppendLines(savePath string, lines ...string) error {
	if err := ensureDir(savePath); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range lines {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(savePath string) error {
	dir := filepath.Dir(savePath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, os.ModePerm)
}
