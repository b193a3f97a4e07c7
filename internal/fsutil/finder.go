// Package fsutil provides file system helpers over go-billy filesystems.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// FindFilesByExtension recursively searches root inside fsys for all files
// ending with extension (case-insensitive). Paths are returned sorted.
func FindFilesByExtension(fsys billy.Filesystem, root string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	extension = strings.ToLower(extension)

	var files []string
	err := util.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), extension) {
			files = append(files, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// ListFiles returns the names of the regular files directly inside dir.
func ListFiles(fsys billy.Filesystem, dir string) ([]string, error) {
	infos, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("readdir %q: %w", dir, err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether p exists in fsys.
func Exists(fsys billy.Filesystem, p string) (bool, error) {
	_, err := fsys.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", p, err)
	}
}

// IsFile reports whether p exists and is a regular file.
func IsFile(fsys billy.Filesystem, p string) bool {
	info, err := fsys.Stat(p)
	return err == nil && !info.IsDir()
}

// CopyFile copies src to dst inside fsys, creating parent directories.
func CopyFile(fsys billy.Filesystem, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	if err := fsys.MkdirAll(path.Dir(filepath.ToSlash(dst)), 0o755); err != nil {
		return fmt.Errorf("mkdir for %q: %w", dst, err)
	}
	out, err := fsys.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	return out.Close()
}

// ClearDir removes everything inside dir and makes sure dir exists.
func ClearDir(fsys billy.Filesystem, dir string) error {
	if err := util.RemoveAll(fsys, dir); err != nil {
		return fmt.Errorf("remove %q: %w", dir, err)
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return nil
}

// WriteFile writes data to p, creating parent directories.
func WriteFile(fsys billy.Filesystem, p string, data []byte) error {
	if err := fsys.MkdirAll(path.Dir(filepath.ToSlash(p)), 0o755); err != nil {
		return fmt.Errorf("mkdir for %q: %w", p, err)
	}
	if err := util.WriteFile(fsys, p, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", p, err)
	}
	return nil
}

// ReadFile reads the whole content of p.
func ReadFile(fsys billy.Filesystem, p string) ([]byte, error) {
	data, err := util.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", p, err)
	}
	return data, nil
}
