package utils

import (
	"io"
	"os"
)

// IsExists reports whether the path exists
func IsExists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir reports whether the path is an existing directory
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreateDir creates the directory and its parents, returns false on failure
func CreateDir(path string) bool {
	return os.MkdirAll(path, os.ModePerm) == nil
}

// Copy copies the src file to dst
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
