package function

import (
	"fmt"
	"os"
	"path/filepath"
)

var configFileNames = []string{"function.yaml", "function.yml"}

// configSearchDirs lists, in priority order, the directories that may hold
// the default config: the working directory, its function/ and deploy/
// subdirectories, and the same three next to the executable.
func configSearchDirs() []string {
	roots := []string{"."}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); dir != "." {
			roots = append(roots, dir)
		}
	}

	dirs := make([]string, 0, 3*len(roots))
	for _, root := range roots {
		dirs = append(dirs, root, filepath.Join(root, "function"), filepath.Join(root, "deploy"))
	}
	return dirs
}

// FindDefaultConfigFile returns the first regular file named function.yaml or
// function.yml found in the search directories.
func FindDefaultConfigFile() (string, error) {
	dirs := configSearchDirs()
	for _, dir := range dirs {
		for _, name := range configFileNames {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("function: no %v in %v", configFileNames, dirs)
}

// WithDefaultConfigFile applies the config found by FindDefaultConfigFile.
// Applying it panics when there is none.
func WithDefaultConfigFile() Option {
	p, err := FindDefaultConfigFile()
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("function.WithDefaultConfigFile: %w", err))
		})
	}
	return WithConfigFile(p)
}
