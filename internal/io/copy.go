package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrFileCopy is returned when an image cannot be copied to the destination.
var ErrFileCopy = errors.New("file copy failure")

// CopyImages copies each named file from src to dst, preserving the file
// mode. It stops at the first failure; files already copied are left in
// place. onCopied, when non-nil, is called after every successful copy.
func CopyImages(src, dst string, names []string, onCopied func(name string)) error {
	for _, name := range names {
		if err := copyFile(filepath.Join(src, name), filepath.Join(dst, name)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFileCopy, name, err)
		}
		logf(name, "copied")
		if onCopied != nil {
			onCopied(name)
		}
	}
	return nil
}

func copyFile(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(to, info.ModTime(), info.ModTime())
}
