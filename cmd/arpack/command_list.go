package main

import (
	"context"
	_ "crypto/sha256"
	"os"
	"time"

	"github.com/alecthomas/units"
	"github.com/opencontainers/go-digest"

	"github.com/please-build/arpack"
	"github.com/please-build/arpack/internal/manifest"
)

type commandList struct {
	archive  string
	long     bool
	digest   bool
	manifest bool

	app *app
}

func (c *commandList) setup(a *app) {
	c.app = a
	cmd := a.kp.Command("list", "List the members of an archive").Alias("ls")
	cmd.Arg("archive", "Archive to list").Required().StringVar(&c.archive)
	cmd.Flag("long", "Show member metadata").Short('l').BoolVar(&c.long)
	cmd.Flag("digest", "Show the digest of each member's content").BoolVar(&c.digest)
	cmd.Flag("manifest", "Print a manifest that recreates the archive from extracted files").BoolVar(&c.manifest)
	cmd.Action(a.action(c.run))
}

func (c *commandList) run(ctx context.Context) error {
	members, err := c.app.decodeArchive(ctx, c.archive)
	if err != nil {
		return err
	}

	if c.manifest {
		return manifest.Write(c.app.stdout, members)
	}

	for i := range members {
		c.printMember(&members[i])
	}
	return nil
}

func (c *commandList) printMember(m *arpack.Member) {
	if c.long {
		c.app.printStdout("%s %d/%d %10v %s ",
			os.FileMode(m.Mode).Perm(), m.Uid, m.Gid, units.Base2Bytes(m.Size), m.Time().UTC().Format(time.RFC3339))
	}
	if c.digest {
		c.app.printStdout("%s ", digest.FromBytes(m.Content))
	}
	c.app.printStdout("%s\n", m.Name)
}
