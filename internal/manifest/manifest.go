// Package manifest reads and writes lists of files to pack into an archive, together with the
// metadata to record for each one.
//
// Two formats are supported. The line format holds one entry per line as
//
//	path:modified:owner:group:mode:size
//
// where mode is octal and any field after path may be left empty to take its value from the
// file. Blank lines and lines starting with '#' are ignored. The YAML format holds the same fields
// under a top-level "members" list, and additionally allows the member name to differ from the
// file's base name.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/please-build/arpack"
	"github.com/please-build/arpack/internal/fsmember"
)

// Format identifies a manifest syntax.
type Format int

const (
	// Lines is the colon separated line format.
	Lines Format = iota

	// YAML is the YAML format.
	YAML
)

// Entry is one file listed in a manifest. Nil fields are taken from the file.
type Entry struct {
	Path     string  `yaml:"path"`
	Name     string  `yaml:"name,omitempty"`
	Modified *int64  `yaml:"modified,omitempty"`
	Owner    *int    `yaml:"owner,omitempty"`
	Group    *int    `yaml:"group,omitempty"`
	Mode     *string `yaml:"mode,omitempty"`
	Size     *int64  `yaml:"size,omitempty"`
}

// Manifest is an ordered list of entries.
type Manifest struct {
	Members []Entry `yaml:"members"`
}

// FormatFor returns the format implied by a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return Lines
	}
}

// Load reads the manifest at path, choosing the format from its extension.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrap(err, "unable to open manifest")
	}
	defer f.Close() //nolint:errcheck

	m, err := Parse(f, FormatFor(path))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %v", path)
	}
	return m, nil
}

// Parse reads a manifest in the given format.
func Parse(r io.Reader, format Format) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch format {
	case YAML:
		m, err = parseYAML(r)
	case Lines:
		m, err = parseLines(r)
	default:
		return nil, errors.Errorf("unknown manifest format %d", format)
	}
	if err != nil {
		return nil, err
	}
	for i, e := range m.Members {
		if e.Path == "" {
			return nil, errors.Errorf("entry %d has no path", i+1)
		}
		if e.Mode != nil {
			if _, err := parseMode(*e.Mode); err != nil {
				return nil, errors.Wrapf(err, "entry %d", i+1)
			}
		}
	}
	return m, nil
}

func parseYAML(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "unable to decode YAML")
	}
	return &m, nil
}

func parseLines(r io.Reader) (*Manifest, error) {
	var m Manifest
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		m.Members = append(m.Members, e)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read manifest")
	}
	return &m, nil
}

func parseLine(text string) (Entry, error) {
	fields := strings.Split(text, ":")
	if len(fields) > 6 {
		return Entry{}, errors.Errorf("expected at most 6 fields, got %d", len(fields))
	}
	fields = append(fields, make([]string, 6-len(fields))...)

	e := Entry{Path: fields[0]}
	var err error
	if e.Modified, err = optional(fields[1], "modified", parseInt64); err != nil {
		return e, err
	}
	if e.Owner, err = optional(fields[2], "owner", strconv.Atoi); err != nil {
		return e, err
	}
	if e.Group, err = optional(fields[3], "group", strconv.Atoi); err != nil {
		return e, err
	}
	if fields[4] != "" {
		e.Mode = &fields[4]
	}
	if e.Size, err = optional(fields[5], "size", parseInt64); err != nil {
		return e, err
	}
	return e, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseMode(s string) (int64, error) {
	mode, err := strconv.ParseInt(s, 8, 64)
	if err != nil {
		return 0, errors.Errorf("invalid octal mode %q", s)
	}
	return mode, nil
}

// optional parses s with parse, returning nil for an empty field.
func optional[T any](s, field string, parse func(string) (T, error)) (*T, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parse(s)
	if err != nil {
		return nil, errors.Errorf("invalid %v %q", field, s)
	}
	return &v, nil
}

// Sources converts the manifest's entries into sources for fsmember.Load. Relative paths are
// resolved against baseDir.
func (m *Manifest) Sources(baseDir string) ([]fsmember.Source, error) {
	sources := make([]fsmember.Source, len(m.Members))
	for i, e := range m.Members {
		src := fsmember.Source{
			Path:         e.Path,
			Name:         e.Name,
			ModTime:      e.Modified,
			Owner:        e.Owner,
			Group:        e.Group,
			ExpectedSize: e.Size,
		}
		if !filepath.IsAbs(src.Path) {
			src.Path = filepath.Join(baseDir, src.Path)
		}
		if e.Mode != nil {
			mode, err := parseMode(*e.Mode)
			if err != nil {
				return nil, err
			}
			src.Mode = &mode
		}
		sources[i] = src
	}
	return sources, nil
}

// Write renders the headers of members in the line format. Nothing is written if a member name
// cannot be read back from that format; such archives need a YAML manifest.
func Write(w io.Writer, members []arpack.Member) error {
	for i := range members {
		if err := checkLineName(members[i].Name); err != nil {
			return errors.Wrapf(err, "member %d", i)
		}
	}
	for i := range members {
		h := &members[i].Header
		if _, err := fmt.Fprintf(w, "%s:%d:%d:%d:%o:%d\n", h.Name, h.ModTime, h.Uid, h.Gid, h.Mode, h.Size); err != nil {
			return errors.Wrap(err, "unable to write manifest")
		}
	}
	return nil
}

// checkLineName rejects names that parseLines would split, skip or trim.
func checkLineName(name string) error {
	switch {
	case name == "":
		return errors.New("empty name cannot be written to a line manifest")
	case strings.ContainsAny(name, ":\r\n"):
		return errors.Errorf("name %q cannot be written to a line manifest", name)
	case strings.HasPrefix(name, "#") || strings.TrimSpace(name) != name:
		return errors.Errorf("name %q cannot be written to a line manifest", name)
	}
	return nil
}
