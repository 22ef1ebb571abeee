/*
Copyright (c) 2017 Jerry Jacobs <jerry.jacobs@xor-gate.org>
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package arpack

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalHeaderWrite(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	err := writer.Close()
	require.NoError(t, err)
	assert.Equal(t, []byte("!<arch>\n"), buf.Bytes())
}

func TestSimpleFile(t *testing.T) {
	hdr := new(Header)
	body := "ABC"
	hdr.ModTime = 0
	hdr.Name = "data.tar.gz"
	hdr.Size = int64(len(body))
	hdr.Mode = 0100664
	hdr.Uid = 1000
	hdr.Gid = 1000

	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.WriteHeader(hdr))
	_, err := writer.Write([]byte(body))
	require.NoError(t, err)
	err = writer.Close()
	require.NoError(t, err)

	b, err := os.ReadFile("./fixtures/data.a")
	require.NoError(t, err)
	assert.Equal(t, b, buf.Bytes())
}

func TestWriteInPieces(t *testing.T) {
	// The pad byte follows the member's content, not each odd-sized write.
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.WriteHeader(&Header{Name: "data.tar.gz", Uid: 1000, Gid: 1000, Mode: 0100664, Size: 3}))
	for _, piece := range []string{"A", "B", "C"} {
		n, err := writer.Write([]byte(piece))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	require.NoError(t, writer.Close())

	b, err := os.ReadFile("./fixtures/data.a")
	require.NoError(t, err)
	assert.Equal(t, b, buf.Bytes())
}

func TestWriteTooLong(t *testing.T) {
	body := "Hello world!\n"

	hdr := new(Header)
	hdr.Name = "hello.txt"
	hdr.Size = 1

	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.WriteHeader(hdr))
	n, err := writer.Write([]byte(body))
	assert.ErrorIs(t, err, ErrWriteTooLong)
	assert.Equal(t, 1, n)
	assert.Equal(t, len(GlobalHeader)+HeaderSize+2, buf.Len())
}

func TestWriteTooShort(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.WriteHeader(&Header{Name: "first", Size: 4}))
	_, err := writer.Write([]byte("ab"))
	require.NoError(t, err)

	err = writer.WriteHeader(&Header{Name: "second"})
	assert.ErrorIs(t, err, ErrWriteTooShort)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 0, encErr.Index)
	assert.Equal(t, "first", encErr.Name)

	assert.ErrorIs(t, writer.Close(), ErrWriteTooShort)
}

func TestWriteHeaderRejectsOverflow(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.WriteMember(&Member{Header: Header{Name: "ok"}, Content: []byte{}}))
	before := buf.Len()

	err := writer.WriteHeader(&Header{Name: "huge", Size: 10_000_000_000})
	assert.ErrorIs(t, err, ErrFieldOverflow)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 1, encErr.Index)
	assert.Equal(t, "huge", encErr.Name)
	assert.Equal(t, before, buf.Len(), "nothing written for a rejected header")

	err = writer.WriteHeader(&Header{Name: "a_very_long_name.o"})
	assert.ErrorIs(t, err, ErrFilenameTooLong)
	assert.Equal(t, before, buf.Len())
	require.NoError(t, writer.Close())
}

func TestWriteMemberSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	err := writer.WriteMember(&Member{Header: Header{Name: "liar", Size: 2}, Content: []byte("abc")})
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, 0, buf.Len())
}

func TestWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	require.NoError(t, writer.Close())
	assert.ErrorIs(t, writer.Close(), ErrWriterClosed)
	assert.ErrorIs(t, writer.WriteHeader(&Header{Name: "late"}), ErrWriterClosed)
	_, err := writer.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrWriterClosed)
}

// limitedWriter accepts n bytes, then fails every write.
type limitedWriter struct {
	n int
}

func (w *limitedWriter) Write(b []byte) (int, error) {
	if len(b) > w.n {
		return 0, errors.New("disk full")
	}
	w.n -= len(b)
	return len(b), nil
}

func TestWriteHeaderFailure(t *testing.T) {
	writer := NewWriter(&limitedWriter{n: len(GlobalHeader)})
	err := writer.WriteHeader(&Header{Name: "lost", Size: 3})
	assert.EqualError(t, err, "disk full")

	// The failed header does not leave a member waiting for content.
	_, err = writer.Write([]byte("abc"))
	assert.ErrorIs(t, err, ErrWriteTooLong)
	require.NoError(t, writer.Close())
}
