package relocation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// moveFile renames src to dst, falling back to copy and unlink when rename is
// not possible (e.g. across devices).
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return errors.Join(fmt.Errorf("rename %s: %w", src, renameErr), err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("unlink %s: %w", src, err)
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("copy stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("copy close %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

// writeMoved writes content to dst and removes src. It is used instead of
// moveFile when the document body was rewritten.
func writeMoved(src, dst string, content []byte) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("unlink %s: %w", src, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
