package main

import (
	"os"
	"path/filepath"
)

// dirStat reports whether path is a directory.
func dirStat(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return st.IsDir(), nil
}

func parentDir(path string) string {
	return filepath.Dir(path)
}
