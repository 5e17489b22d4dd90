package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// scoreFiles expands the arguments into score files: directories are
// replaced by the .scr files in them.
func scoreFiles(args []string) ([]string, error) {
	var ret []string
	for _, param := range args {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files, err := filepath.Glob(filepath.Join(param, "*.scr"))
			if err != nil {
				return nil, fmt.Errorf("could not glob the path %v for score files: %w", param, err)
			}
			ret = append(ret, files...)
			continue
		}
		ret = append(ret, param)
	}
	return ret, nil
}

// output writes contents next to the input file, or into directory if it is
// not empty, with the extension of the input replaced.
func output(filename, directory, extension string, contents []byte) (string, error) {
	dir, name := filepath.Split(filename)
	if directory != "" {
		dir = directory
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("could not create output directory %v: %w", dir, err)
		}
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
	f := filepath.Join(dir, name)
	if err := os.WriteFile(f, contents, 0644); err != nil {
		return "", fmt.Errorf("could not write file %v: %w", f, err)
	}
	return f, nil
}
