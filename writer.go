/*
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
	"fmt"
	"io"
)

// Writer provides sequential writing of an ar archive.
// An ar archive is sequence of header file pairs
// Call WriteHeader to begin writing a new file, then call Write to supply the file's data
//
// Example:
// archive := arpack.NewWriter(writer)
// header := &arpack.Header{Name: "debian-binary", Mode: 0100644, Size: 4}
// if err := archive.WriteHeader(header); err != nil {
// 	return err
// }
// io.Copy(archive, data)
// return archive.Close()
type Writer struct {
	// w is the underlying io.Writer to which the archive file is written.
	w io.Writer

	// closed is true if Close has been called on this Writer, or false if it has not.
	closed bool

	// wroteHeader is true if the global header has been written to the underlying io.Writer, or
	// false if it has not yet.
	wroteHeader bool

	// nb is the number of bytes that have not yet been written (via Write) since the most
	// recent call to WriteHeader.
	nb int64

	// pad is the number of padding bytes still owed for the current member; it becomes 1 after
	// the header of an odd-sized member and returns to 0 once its content and pad are written.
	pad int64

	// members is the number of member headers written so far.
	members int

	// name is the name of the most recently written member.
	name string
}

// NewWriter creates a new Writer that writes an ar archive to an underlying io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// writeGlobalHeader writes the global header to the underlying io.Writer. This happens once, and
// before any other write to the io.Writer.
func (aw *Writer) writeGlobalHeader() error {
	if aw.wroteHeader {
		return nil
	}
	aw.wroteHeader = true
	if _, err := io.WriteString(aw.w, GlobalHeader); err != nil {
		return fmt.Errorf("ar: write archive header: %w", err)
	}
	return nil
}

// incomplete returns an error if the current member has not received all of its content.
func (aw *Writer) incomplete() error {
	if aw.nb == 0 {
		return nil
	}
	return &EncodeError{
		Index: aw.members - 1,
		Name:  aw.name,
		Err:   fmt.Errorf("%w: %d bytes missing", ErrWriteTooShort, aw.nb),
	}
}

// Close finishes writing the archive, ensuring that a valid archive header has been written even if
// the archive contains no files. It does not close the underlying io.Writer.
func (aw *Writer) Close() error {
	if aw.closed {
		return ErrWriterClosed
	}
	if err := aw.incomplete(); err != nil {
		return err
	}
	aw.closed = true
	return aw.writeGlobalHeader()
}

// Write writes to the current member of the archive.
// Returns ErrWriteTooLong if more than header.Size
// bytes are written after a call to WriteHeader
func (aw *Writer) Write(b []byte) (n int, err error) {
	if aw.closed {
		return 0, ErrWriterClosed
	}
	if int64(len(b)) > aw.nb {
		b = b[0:aw.nb]
		err = ErrWriteTooLong
	}
	n, werr := aw.w.Write(b)
	aw.nb -= int64(n)
	if werr != nil {
		return n, werr
	}

	if aw.nb == 0 && aw.pad > 0 { // data size must be aligned to an even byte
		if _, err := aw.w.Write([]byte{PadByte}); err != nil {
			// Return n although we actually wrote n+1 bytes.
			// This is to make io.Copy() to work correctly.
			return n, err
		}
		aw.pad = 0
	}

	return
}

// WriteHeader writes hdr to the underlying writer and prepares to receive hdr.Size bytes of
// content. Nothing is written if hdr does not fit the header layout, or if the previous member's
// content is incomplete.
func (aw *Writer) WriteHeader(hdr *Header) error {
	buf, err := formatHeader(hdr)
	if err != nil {
		return &EncodeError{Index: aw.members, Name: hdr.Name, Err: err}
	}
	return aw.writeMemberHeader(hdr, buf)
}

// WriteMember writes a complete member: its header, content and padding.
func (aw *Writer) WriteMember(m *Member) error {
	buf, err := m.header()
	if err != nil {
		return &EncodeError{Index: aw.members, Name: m.Name, Err: err}
	}
	if err := aw.writeMemberHeader(&m.Header, buf); err != nil {
		return err
	}
	_, err = aw.Write(m.Content)
	return err
}

func (aw *Writer) writeMemberHeader(hdr *Header, buf [HeaderSize]byte) error {
	if aw.closed {
		return ErrWriterClosed
	}
	if err := aw.incomplete(); err != nil {
		return err
	}
	if err := aw.writeGlobalHeader(); err != nil {
		return err
	}
	if _, err := aw.w.Write(buf[:]); err != nil {
		return err
	}
	aw.members++
	aw.name = hdr.Name
	aw.nb = hdr.Size
	aw.pad = padding(hdr.Size)
	return nil
}
