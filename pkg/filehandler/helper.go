package filehandler

import (
	"os"
	"path/filepath"
	"strings"
)

// coverExtensions are the formats accepted as cover material. Lossy
// formats appear here read-side only; output is always lossless.
var coverExtensions = map[string]bool{
	".png":  true,
	".bmp":  true,
	".jpg":  true,
	".jpeg": true,
}

// IsCoverFile reports whether path has a loadable cover-image extension.
func IsCoverFile(path string) bool {
	return coverExtensions[strings.ToLower(filepath.Ext(path))]
}

// GatherCovers collects the cover-image paths in a directory,
// non-recursive, in directory order.
func GatherCovers(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsCoverFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dirPath, entry.Name()))
	}
	return files, nil
}
