package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/please-build/arpack"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.kp.Terminate(nil)
	err := a.run(args)
	return stdout.String(), err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestCreateListExtract(t *testing.T) {
	for _, backend := range arpack.CodecNames() {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{"debian-binary": "2.0\n", "data.tar.gz": "ABC"})
			archive := filepath.Join(dir, "pkg.deb")

			_, err := runApp(t, "--backend", backend, "create", archive,
				filepath.Join(dir, "debian-binary"), filepath.Join(dir, "data.tar.gz"),
				"--owner=1000", "--group=1000", "--mode=100664", "--mtime=0")
			require.NoError(t, err)

			data, err := os.ReadFile(archive)
			require.NoError(t, err)
			assert.Len(t, data, 8+60+4+60+3+1)

			out, err := runApp(t, "--backend", backend, "list", archive)
			require.NoError(t, err)
			assert.Equal(t, "debian-binary\ndata.tar.gz\n", out)

			out, err = runApp(t, "list", "--long", archive)
			require.NoError(t, err)
			assert.Equal(t,
				"-rw-rw-r-- 1000/1000         4B 1970-01-01T00:00:00Z debian-binary\n"+
					"-rw-rw-r-- 1000/1000         3B 1970-01-01T00:00:00Z data.tar.gz\n", out)

			out, err = runApp(t, "list", "--digest", archive)
			require.NoError(t, err)
			assert.Contains(t, out, "sha256:b5d4045c3f466fa91fe2cc6abe79232a1a57cdf104f7a26e716e0a1e2789df78 data.tar.gz\n")

			out, err = runApp(t, "list", "--manifest", archive)
			require.NoError(t, err)
			assert.Equal(t, "debian-binary:0:1000:1000:100664:4\ndata.tar.gz:0:1000:1000:100664:3\n", out)

			dest := filepath.Join(dir, "out")
			_, err = runApp(t, "--backend", backend, "extract", archive, "-C", dest, "data.tar.gz")
			require.NoError(t, err)
			b, err := os.ReadFile(filepath.Join(dest, "data.tar.gz"))
			require.NoError(t, err)
			assert.Equal(t, "ABC", string(b))
			_, err = os.Stat(filepath.Join(dest, "debian-binary"))
			assert.ErrorIs(t, err, os.ErrNotExist)

			out, err = runApp(t, "check", "--strict", archive)
			require.NoError(t, err)
			assert.Equal(t, archive+": 2 members OK\n", out)
		})
	}
}

func TestCreateFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"debian-binary": "2.0\n", "control.tar.gz": "ctl", "extra": "x"})
	m := filepath.Join(dir, "pkg.manifest")
	require.NoError(t, os.WriteFile(m, []byte("debian-binary:0:0:0:100644:4\ncontrol.tar.gz:0:0:0:100644\n"), 0o644))
	archive := filepath.Join(dir, "pkg.a")

	_, err := runApp(t, "create", "--manifest", m, archive, filepath.Join(dir, "extra"), "--mtime=7")
	require.NoError(t, err)

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	members, err := arpack.Decode(data)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, arpack.Header{Name: "debian-binary", Mode: 0100644, Size: 4}, members[0].Header)
	assert.Equal(t, "control.tar.gz", members[1].Name)
	assert.Equal(t, "extra", members[2].Name)
	assert.Equal(t, int64(7), members[2].ModTime)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bogus.a": "not an archive", "this_name_is_too_long": "x"})

	_, err := runApp(t, "list", filepath.Join(dir, "bogus.a"))
	assert.ErrorIs(t, err, arpack.ErrInvalidArchiveSignature)

	_, err = runApp(t, "create", filepath.Join(dir, "out.a"), filepath.Join(dir, "this_name_is_too_long"))
	assert.ErrorIs(t, err, arpack.ErrFilenameTooLong)
	_, err = os.Stat(filepath.Join(dir, "out.a"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runApp(t, "--max-size=4B", "list", filepath.Join(dir, "bogus.a"))
	assert.ErrorContains(t, err, "larger than the maximum")

	_, err = runApp(t, "--backend=native", "list", filepath.Join(dir, "bogus.a"))
	assert.Error(t, err)

	_, err = runApp(t, "create", filepath.Join(dir, "out.a"), "--mode=999")
	assert.ErrorContains(t, err, `invalid octal mode "999"`)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.a"), []byte(arpack.GlobalHeader), 0o644))
	_, err = runApp(t, "extract", filepath.Join(dir, "empty.a"), "missing")
	assert.ErrorContains(t, err, `archive has no member "missing"`)
}

func TestCheckNonCanonical(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "padded.a")
	data, err := arpack.Encode([]arpack.Member{arpack.NewMember(arpack.Header{Name: "odd"}, []byte("abc"))})
	require.NoError(t, err)
	data[len(data)-1] = 0
	require.NoError(t, os.WriteFile(archive, data, 0o644))

	out, err := runApp(t, "check", archive)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, ": 1 members OK\n"))

	_, err = runApp(t, "check", "--strict", archive)
	assert.ErrorContains(t, err, "does not reproduce")
}

func TestExtractDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "dup.a")
	data, err := arpack.Encode([]arpack.Member{
		arpack.NewMember(arpack.Header{Name: "file", Mode: 0100644}, []byte("old")),
		arpack.NewMember(arpack.Header{Name: "other", Mode: 0100644}, []byte("x")),
		arpack.NewMember(arpack.Header{Name: "file", Mode: 0100644}, []byte("new")),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(archive, data, 0o644))

	for _, args := range [][]string{{}, {"file"}} {
		dest := t.TempDir()
		_, err := runApp(t, append([]string{"extract", archive, "-C", dest}, args...)...)
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dest, "file"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(b))
	}
}
