/*
Command arpack creates, lists, extracts and checks Unix ar archives.

Usage:

	$ arpack [<flags>] <command> [<args> ...]

Use 'arpack help' to see more details.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"
	"github.com/pkg/errors"

	"github.com/please-build/arpack"
	"github.com/please-build/arpack/internal/logging"
)

var log = logging.Module("arpack")

type app struct {
	kp *kingpin.Application

	logLevel string
	backend  string
	maxSize  units.Base2Bytes

	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		kp:     kingpin.New("arpack", "Create and unpack Unix ar archives."),
		ctx:    context.Background(),
		stdout: stdout,
		stderr: stderr,
	}
	a.kp.UsageWriter(stdout)
	a.kp.ErrorWriter(stderr)

	a.kp.Flag("log-level", "Log level").Default("info").EnumVar(&a.logLevel, logging.Levels...)
	a.kp.Flag("backend", "Codec used to encode and decode archives").Default(arpack.BufferCodec.Name()).EnumVar(&a.backend, arpack.CodecNames()...)
	a.kp.Flag("max-size", "Largest archive that will be read").Default("1GiB").BytesVar(&a.maxSize)
	a.kp.PreAction(a.setupLogging)

	(&commandCreate{}).setup(a)
	(&commandList{}).setup(a)
	(&commandExtract{}).setup(a)
	(&commandCheck{}).setup(a)
	return a
}

func (a *app) setupLogging(*kingpin.ParseContext) error {
	l, err := logging.New(a.stderr, a.logLevel)
	if err != nil {
		return err
	}
	a.ctx = logging.WithLogger(a.ctx, l)
	return nil
}

// action adapts a command's run method to a kingpin action.
func (a *app) action(run func(ctx context.Context) error) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		return run(a.ctx)
	}
}

// codec returns the codec selected on the command line.
func (a *app) codec() arpack.Codec {
	c, err := arpack.CodecByName(a.backend)
	if err != nil {
		// The flag is an enum of the available codecs.
		panic(err)
	}
	return c
}

// readArchive reads an archive file, refusing files larger than --max-size.
func (a *app) readArchive(ctx context.Context, path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat archive")
	}
	if fi.Size() > int64(a.maxSize) {
		return nil, errors.Errorf("%v is %v, larger than the maximum of %v", path, units.Base2Bytes(fi.Size()), a.maxSize)
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrap(err, "unable to read archive")
	}
	log(ctx).Debugw("read archive", "path", path, "bytes", len(data))
	return data, nil
}

// decodeArchive reads and decodes an archive file with the selected codec.
func (a *app) decodeArchive(ctx context.Context, path string) ([]arpack.Member, error) {
	data, err := a.readArchive(ctx, path)
	if err != nil {
		return nil, err
	}
	members, err := a.codec().Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %v", path)
	}
	return members, nil
}

func (a *app) printStdout(msg string, args ...interface{}) {
	fmt.Fprintf(a.stdout, msg, args...) //nolint:errcheck
}

func (a *app) run(args []string) error {
	_, err := a.kp.Parse(args)
	return err
}

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "arpack: %v\n", err) //nolint:errcheck
		os.Exit(1)
	}
}
