// Package uploader transfers read files to the ENA Webin FTP intake area by
// invoking curl once per file, sequentially, stopping at the first failure.
package uploader

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oceanomics/faire2ena/internal/errors"
)

// Options configures an upload batch.
type Options struct {
	Host     string
	Subdir   string
	Username string
	Password string
}

// Uploader runs the transfers.
type Uploader struct {
	opts Options

	// runCommand is swapped out in tests.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New creates an uploader for one intake endpoint.
func New(opts Options) *Uploader {
	return &Uploader{
		opts: opts,
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// RemoteURL returns the FTP directory URL files are uploaded into.
func (u *Uploader) RemoteURL() string {
	url := "ftp://" + u.opts.Host + "/"
	if subdir := strings.Trim(u.opts.Subdir, "/"); subdir != "" {
		url += subdir + "/"
	}
	return url
}

// FindReadFiles lists the fastq.gz files in dir, sorted by name.
func FindReadFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.fastq.gz"))
	if err != nil {
		return nil, fmt.Errorf("failed to list read files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// UploadFile transfers a single file. On failure the captured sub-process
// output is wrapped into the returned error.
func (u *Uploader) UploadFile(ctx context.Context, path string) error {
	const op = errors.Op("uploader.UploadFile")

	args := []string{
		"-T", path,
		"-u", u.opts.Username + ":" + u.opts.Password,
		u.RemoteURL(),
	}

	output, err := u.runCommand(ctx, "curl", args...)
	if err != nil {
		msg := fmt.Sprintf("upload failed for %s", path)
		if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
			msg += "\n" + trimmed
		}
		return errors.E(op, errors.KindUpload, msg, err)
	}
	return nil
}

// UploadAll transfers every file in order, aborting on the first failure.
// The callback, when set, is invoked before each transfer.
func (u *Uploader) UploadAll(ctx context.Context, files []string, onFile func(path string)) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if onFile != nil {
			onFile(f)
		}
		if err := u.UploadFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
