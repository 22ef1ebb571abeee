package fsmember

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/please-build/arpack"
)

type extractOptions struct {
	overwrite bool
}

// ExtractOption changes how Extract writes members.
type ExtractOption func(*extractOptions)

// Overwrite allows Extract to replace existing files.
func Overwrite(overwrite bool) ExtractOption {
	return func(o *extractOptions) {
		o.overwrite = overwrite
	}
}

// Extract writes the content of each member to a file named after it in dir, and applies the
// member's permission bits and modification time. Each file is written atomically.
func Extract(ctx context.Context, dir string, members []arpack.Member, options ...ExtractOption) error {
	var opts extractOptions
	for _, o := range options {
		o(&opts)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create output directory")
	}

	for i := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := &members[i]
		if err := checkName(m.Name); err != nil {
			return err
		}
		target := filepath.Join(dir, m.Name)
		if err := extractFile(target, m, opts.overwrite); err != nil {
			return err
		}
		log(ctx).Debugw("extracted member", "name", m.Name, "size", m.Size, "path", target)
	}
	return nil
}

// checkName rejects member names that would not produce a file directly inside the output directory.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Errorf("invalid member name %q", name)
	case strings.ContainsAny(name, `/\`+"\x00"), strings.ContainsRune(name, os.PathSeparator):
		return errors.Errorf("member name %q contains a path separator", name)
	}
	return nil
}

func extractFile(target string, m *arpack.Member, overwrite bool) error {
	switch _, err := os.Lstat(target); {
	case os.IsNotExist(err): // write file below
	case err == nil:
		if !overwrite {
			return errors.Errorf("unable to create %q, it already exists", target)
		}
	default:
		return errors.Wrap(err, "failed to stat "+target)
	}

	if err := atomic.WriteFile(target, bytes.NewReader(m.Content)); err != nil {
		return errors.Wrap(err, "unable to write "+target)
	}
	if err := os.Chmod(target, os.FileMode(m.Mode).Perm()); err != nil {
		return errors.Wrap(err, "unable to set permissions of "+target)
	}
	t := m.Time()
	if err := os.Chtimes(target, t, t); err != nil {
		return errors.Wrap(err, "unable to set modification time of "+target)
	}
	return nil
}
