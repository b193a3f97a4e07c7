package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/klauspost/compress/zip"
	"github.com/specialistvlad/scenepack/internal/fsutil"
)

// ArchiveFile is the name of the archive inside an archived bundle.
const ArchiveFile = "zipped_project.zip"

// Archiver packs the content of srcDir into the archive file dst.
type Archiver interface {
	Archive(ctx context.Context, fsys billy.Filesystem, srcDir, dst string) error
}

// ZipArchiver writes deflated zip archives. Entry names are relative to
// srcDir and use forward slashes.
type ZipArchiver struct{}

func (ZipArchiver) Archive(ctx context.Context, fsys billy.Filesystem, srcDir, dst string) (err error) {
	f, err := fsys.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %q: %w", dst, cerr)
		}
	}()

	zw := zip.NewWriter(f)
	root := filepath.ToSlash(path.Clean(srcDir))
	walkErr := util.Walk(fsys, srcDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := strings.TrimPrefix(strings.TrimPrefix(filepath.ToSlash(p), root), "/")
		return addZipEntry(zw, fsys, p, name)
	})
	if walkErr != nil {
		_ = zw.Close()
		return fmt.Errorf("walk %q: %w", srcDir, walkErr)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func addZipEntry(zw *zip.Writer, fsys billy.Filesystem, p, name string) error {
	in, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("open %q: %w", p, err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create zip entry %q: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write zip entry %q: %w", name, err)
	}
	return nil
}

// archive replaces the bundle content with a single zip of it. A failing
// archiver leaves the bundle unzipped.
func (r *run) archive() error {
	r.observer.Update(90, "Creating the zip file...")
	tmp := path.Join(r.workDir, "zipped_"+r.result.RunID+".zip")
	if err := r.archiver.Archive(r.ctx, r.fs, r.opts.OutDir, tmp); err != nil {
		if r.ctx.Err() != nil {
			return r.ctx.Err()
		}
		r.warn(StageArchive, "could not create the zip file: %v", err)
		_ = r.fs.Remove(tmp)
		return nil
	}

	r.observer.Update(95, "Cleaning files...")
	if err := fsutil.ClearDir(r.fs, r.opts.OutDir); err != nil {
		return err
	}
	if err := fsutil.CopyFile(r.fs, tmp, path.Join(r.opts.OutDir, ArchiveFile)); err != nil {
		return err
	}
	if err := r.fs.Remove(tmp); err != nil {
		r.logger.Debug("Failed to remove temporary archive.", "file", tmp, "error", err)
	}
	r.result.Archive = ArchiveFile
	return nil
}

// publish uploads the archive. Unlike the archive itself, a failed upload
// fails the export.
func (r *run) publish() error {
	if r.result.Archive == "" {
		return errors.New("no archive to publish")
	}
	key := r.opts.PublishKey
	if key == "" {
		key = path.Join(r.project.Name, r.result.RunID, ArchiveFile)
	}
	f, err := r.fs.Open(path.Join(r.opts.OutDir, r.result.Archive))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	location, err := r.publisher.Publish(r.ctx, key, f)
	if err != nil {
		return fmt.Errorf("publish %q: %w", key, err)
	}
	r.result.Location = location
	r.logger.Info("Bundle published.", "location", location)
	return nil
}
