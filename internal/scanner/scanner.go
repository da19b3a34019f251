package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrPathNotFound indicates the root path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotADirectory indicates the root path exists but is a regular file.
	ErrNotADirectory = errors.New("not a directory")
)

// documentExtensions are the file extensions treated as artwork documents.
var documentExtensions = map[string]bool{
	".docx": true,
}

// imageExtensions are the file extensions treated as image candidates.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".gif":  true,
	".bmp":  true,
}

// Directory holds the classified contents of one subdirectory under the root.
// Documents and Images are file names (with extension), sorted ascending.
type Directory struct {
	Path      string
	Documents []string
	Images    []string
}

// Scan enumerates one level of subdirectories under root and classifies the
// files inside each as documents or images by extension. Hidden entries
// (dot-prefixed, e.g. .DS_Store) are skipped, as are subdirectories that
// contain no documents and no images. Deeper nesting is not discovered.
func Scan(root string) ([]Directory, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return nil, fmt.Errorf("stating root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading root directory: %w", err)
	}

	var dirs []Directory
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		dir, err := scanDirectory(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(dir.Documents) == 0 && len(dir.Images) == 0 {
			continue
		}
		dirs = append(dirs, dir)
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })
	return dirs, nil
}

func scanDirectory(path string) (Directory, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Directory{}, fmt.Errorf("reading directory %s: %w", path, err)
	}

	dir := Directory{Path: path}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		switch {
		case documentExtensions[ext]:
			dir.Documents = append(dir.Documents, entry.Name())
		case imageExtensions[ext]:
			dir.Images = append(dir.Images, entry.Name())
		}
	}

	sort.Strings(dir.Documents)
	sort.Strings(dir.Images)
	return dir, nil
}
