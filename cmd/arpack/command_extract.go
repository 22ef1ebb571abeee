package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/please-build/arpack"
	"github.com/please-build/arpack/internal/fsmember"
)

type commandExtract struct {
	archive   string
	names     []string
	dir       string
	overwrite bool

	app *app
}

func (c *commandExtract) setup(a *app) {
	c.app = a
	cmd := a.kp.Command("extract", "Extract members of an archive").Alias("x")
	cmd.Arg("archive", "Archive to extract").Required().StringVar(&c.archive)
	cmd.Arg("members", "Members to extract (default: all)").StringsVar(&c.names)
	cmd.Flag("dir", "Output directory").Short('C').Default(".").StringVar(&c.dir)
	cmd.Flag("overwrite", "Replace existing files").BoolVar(&c.overwrite)
	cmd.Action(a.action(c.run))
}

func (c *commandExtract) run(ctx context.Context) error {
	members, err := c.app.decodeArchive(ctx, c.archive)
	if err != nil {
		return err
	}

	selected, err := selectMembers(members, c.names)
	if err != nil {
		return err
	}

	if err := fsmember.Extract(ctx, c.dir, selected, fsmember.Overwrite(c.overwrite)); err != nil {
		return err
	}

	log(ctx).Infow("extracted archive", "path", c.archive, "members", len(selected), "dir", c.dir)
	return nil
}

// selectMembers returns the members with the given names, in archive order, or all members if no
// names are given. When several members share a name only the last one is returned, so it is the
// one that ends up on disk.
func selectMembers(members []arpack.Member, names []string) ([]arpack.Member, error) {
	last := map[string]int{}
	for i, m := range members {
		last[m.Name] = i
	}
	for _, n := range names {
		if _, ok := last[n]; !ok {
			return nil, errors.Errorf("archive has no member %q", n)
		}
	}

	wanted := map[string]bool{}
	for _, n := range names {
		wanted[n] = true
	}

	var selected []arpack.Member
	for i, m := range members {
		if last[m.Name] != i {
			continue
		}
		if len(names) == 0 || wanted[m.Name] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}
