package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/please-build/arpack/internal/fsmember"
	"github.com/please-build/arpack/internal/manifest"
)

type commandCreate struct {
	archive  string
	files    []string
	manifest string

	owner    int
	ownerSet bool
	group    int
	groupSet bool
	mode     string
	mtime    int64
	mtimeSet bool
	jobs     int

	app *app
}

func (c *commandCreate) setup(a *app) {
	c.app = a
	cmd := a.kp.Command("create", "Create an archive from files").Alias("c")
	cmd.Arg("archive", "Archive to create").Required().StringVar(&c.archive)
	cmd.Arg("files", "Files to add, in order").ExistingFilesVar(&c.files)
	cmd.Flag("manifest", "Manifest listing the files to add, before any given as arguments").ExistingFileVar(&c.manifest)
	cmd.Flag("owner", "Owner id recorded for every member").IsSetByUser(&c.ownerSet).IntVar(&c.owner)
	cmd.Flag("group", "Group id recorded for every member").IsSetByUser(&c.groupSet).IntVar(&c.group)
	cmd.Flag("mode", "Octal mode recorded for every member").StringVar(&c.mode)
	cmd.Flag("mtime", "Modification time (seconds since the epoch) recorded for every member").IsSetByUser(&c.mtimeSet).Int64Var(&c.mtime)
	cmd.Flag("jobs", "Number of files read concurrently").Default("4").IntVar(&c.jobs)
	cmd.Action(a.action(c.run))
}

func (c *commandCreate) options() ([]fsmember.Option, error) {
	opts := []fsmember.Option{fsmember.WithJobs(c.jobs)}
	if c.ownerSet {
		opts = append(opts, fsmember.WithOwner(c.owner))
	}
	if c.groupSet {
		opts = append(opts, fsmember.WithGroup(c.group))
	}
	if c.mtimeSet {
		opts = append(opts, fsmember.WithModTime(c.mtime))
	}
	if c.mode != "" {
		mode, err := strconv.ParseInt(c.mode, 8, 64)
		if err != nil {
			return nil, errors.Errorf("invalid octal mode %q", c.mode)
		}
		opts = append(opts, fsmember.WithMode(mode))
	}
	return opts, nil
}

func (c *commandCreate) run(ctx context.Context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	var sources []fsmember.Source
	if c.manifest != "" {
		m, err := manifest.Load(c.manifest)
		if err != nil {
			return err
		}
		if sources, err = m.Sources(filepath.Dir(c.manifest)); err != nil {
			return err
		}
	}
	sources = append(sources, fsmember.Paths(c.files...)...)

	members, err := fsmember.Load(ctx, sources, opts...)
	if err != nil {
		return err
	}

	codec := c.app.codec()
	data, err := codec.Encode(members)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(c.archive, bytes.NewReader(data)); err != nil {
		return errors.Wrap(err, "unable to write archive")
	}

	log(ctx).Infow("created archive", "path", c.archive, "members", len(members), "bytes", len(data), "backend", codec.Name())
	return nil
}
