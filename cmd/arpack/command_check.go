package main

import (
	"bytes"
	"context"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"

	"github.com/please-build/arpack"
)

type commandCheck struct {
	archive string
	strict  bool

	app *app
}

func (c *commandCheck) setup(a *app) {
	c.app = a
	cmd := a.kp.Command("check", "Check that every backend reads an archive the same way")
	cmd.Arg("archive", "Archive to check").Required().StringVar(&c.archive)
	cmd.Flag("strict", "Fail unless re-encoding reproduces the archive byte for byte").BoolVar(&c.strict)
	cmd.Action(a.action(c.run))
}

func (c *commandCheck) run(ctx context.Context) error {
	data, err := c.app.readArchive(ctx, c.archive)
	if err != nil {
		return err
	}

	var (
		reference []arpack.Member
		first     arpack.Codec
	)
	for _, codec := range arpack.Codecs() {
		members, err := codec.Decode(data)
		if err != nil {
			return errors.Wrapf(err, "%s backend", codec.Name())
		}
		if first == nil {
			reference, first = members, codec
		} else if diff := cmp.Diff(reference, members, cmpopts.EquateEmpty()); diff != "" {
			return errors.Errorf("%s and %s backends disagree (-%s +%s):\n%s", first.Name(), codec.Name(), first.Name(), codec.Name(), diff)
		}

		encoded, err := codec.Encode(members)
		if err != nil {
			return errors.Wrapf(err, "%s backend", codec.Name())
		}
		if !bytes.Equal(encoded, data) {
			if c.strict {
				return errors.Errorf("%s backend does not reproduce %v", codec.Name(), c.archive)
			}
			log(ctx).Warnw("archive is not in canonical form", "backend", codec.Name())
		}
	}

	c.app.printStdout("%s: %d members OK\n", c.archive, len(reference))
	return nil
}
