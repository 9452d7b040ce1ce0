// fileio.go implements the include-directory search list and source file
// reads used by the Engine Facade when resolving #include directives.
package cpp

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLoader resolves #include targets against an ordered list of search
// directories, always starting with the current directory.
type FileLoader struct {
	InclDirPaths []string
	logger       *Logger
}

// NewFileLoader returns a loader whose search list starts with the current
// directory ("").
func NewFileLoader(logger *Logger) *FileLoader {
	return &FileLoader{
		InclDirPaths: []string{""},
		logger:       logger,
	}
}

// Reset clears the search list back to just the current directory.
func (fl *FileLoader) Reset() {
	fl.InclDirPaths = []string{""}
}

// AddIncludeDir resolves and appends one or more directories to the search
// list, skipping duplicates. A path that names a file is replaced by its
// parent directory. A path that resolves to neither a file nor a directory
// is reported via the logger and skipped.
func (fl *FileLoader) AddIncludeDir(dirPaths ...string) {
	for _, dirPath := range dirPaths {
		abs, err := filepath.Abs(dirPath)
		if err != nil {
			fl.logger.Err(fmt.Sprintf("Include dir path '%s' not found.", dirPath), SeverityWarning)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			fl.logger.Err(fmt.Sprintf("Include dir path '%s' not found.", dirPath), SeverityWarning)
			continue
		}
		if !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if !containsPath(fl.InclDirPaths, abs) {
			fl.InclDirPaths = append(fl.InclDirPaths, abs)
		}
	}
}

func containsPath(paths []string, p string) bool {
	for _, existing := range paths {
		if existing == p {
			return true
		}
	}
	return false
}

// Read searches the directory list in order and returns the contents of the
// first matching file. If no directory contains filePath, it logs a warning
// and returns an empty string.
func (fl *FileLoader) Read(filePath string) string {
	for _, dir := range fl.InclDirPaths {
		candidate := filepath.Join(dir, filePath)
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data)
		}
	}
	fl.logger.Err(fmt.Sprintf("Include file path '%s' not found.", filePath), SeverityWarning)
	return ""
}
