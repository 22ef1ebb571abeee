// Package fsmember turns files on disk into archive members and back.
package fsmember

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/please-build/arpack"
	"github.com/please-build/arpack/internal/logging"
)

var log = logging.Module("fsmember")

// regularFile is the file type bits of a regular file in an ar mode field.
const regularFile = 0100000

// Source describes one file to load as an archive member. Nil fields take their value from the
// Options passed to Load, and failing that from the file itself.
type Source struct {
	// Path is the file to read.
	Path string

	// Name is the member name; it defaults to the base name of Path.
	Name string

	ModTime *int64
	Owner   *int
	Group   *int
	Mode    *int64

	// ExpectedSize, if set, must match the size of the file.
	ExpectedSize *int64
}

type loadOptions struct {
	modTime *int64
	owner   *int
	group   *int
	mode    *int64
	jobs    int
}

// Option overrides the metadata Load takes from the filesystem.
type Option func(*loadOptions)

// WithModTime sets the modification time (in seconds since the epoch) of every member.
func WithModTime(sec int64) Option {
	return func(o *loadOptions) {
		o.modTime = &sec
	}
}

// WithOwner sets the owner id of every member.
func WithOwner(uid int) Option {
	return func(o *loadOptions) {
		o.owner = &uid
	}
}

// WithGroup sets the group id of every member.
func WithGroup(gid int) Option {
	return func(o *loadOptions) {
		o.group = &gid
	}
}

// WithMode sets the mode of every member.
func WithMode(mode int64) Option {
	return func(o *loadOptions) {
		o.mode = &mode
	}
}

// WithJobs sets how many files are read concurrently.
func WithJobs(n int) Option {
	return func(o *loadOptions) {
		o.jobs = n
	}
}

// Paths returns a Source for each path.
func Paths(paths ...string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p}
	}
	return sources
}

// Load reads every source and returns the members in the same order.
func Load(ctx context.Context, sources []Source, options ...Option) ([]arpack.Member, error) {
	opts := loadOptions{jobs: 4}
	for _, o := range options {
		o(&opts)
	}

	members := make([]arpack.Member, len(sources))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.jobs, 1))
	for i := range sources {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := load(&sources[i], &opts)
			if err != nil {
				return err
			}
			log(ctx).Debugw("loaded member", "path", sources[i].Path, "name", m.Name, "size", m.Size)
			members[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

func load(src *Source, opts *loadOptions) (arpack.Member, error) {
	fi, err := os.Lstat(src.Path)
	if err != nil {
		return arpack.Member{}, errors.Wrap(err, "unable to stat member file")
	}
	if !fi.Mode().IsRegular() {
		return arpack.Member{}, errors.Errorf("%v is not a regular file (%v)", src.Path, fi.Mode().Type())
	}
	if src.ExpectedSize != nil && *src.ExpectedSize != fi.Size() {
		return arpack.Member{}, errors.Errorf("%v is %d bytes, expected %d", src.Path, fi.Size(), *src.ExpectedSize)
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return arpack.Member{}, errors.Wrap(err, "unable to read member file")
	}
	if int64(len(content)) != fi.Size() {
		return arpack.Member{}, errors.Errorf("%v changed size while being read", src.Path)
	}

	uid, gid := owner(fi)
	hdr := arpack.Header{
		Name:    src.Name,
		ModTime: pick(src.ModTime, opts.modTime, fi.ModTime().Unix()),
		Uid:     pick(src.Owner, opts.owner, uid),
		Gid:     pick(src.Group, opts.group, gid),
		Mode:    pick(src.Mode, opts.mode, regularFile|int64(fi.Mode().Perm())),
	}
	if hdr.Name == "" {
		hdr.Name = filepath.Base(src.Path)
	}
	return arpack.NewMember(hdr, content), nil
}

// pick returns the first non-nil override, or def.
func pick[T any](override, option *T, def T) T {
	if override != nil {
		return *override
	}
	if option != nil {
		return *option
	}
	return def
}
