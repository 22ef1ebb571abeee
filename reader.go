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
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Reader provides read access to an ar archive.
// Call next to skip files.
//
// Example:
//
//	reader, err := arpack.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	for {
//	    _, err := reader.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    io.Copy(&buf, reader)
//	}
type Reader struct {
	// r is the underlying archive file.
	r *bufio.Reader

	// off is the offset in the archive of the next unread byte.
	off int64

	// hdrOff is the offset in the archive of the current member's header.
	hdrOff int64

	// name is the name of the current member.
	name string

	// nb is the number of bytes in the current data section that remain unread.
	nb int64

	// pad is the number of padding bytes appended to the current data section; it is always either 0
	// or 1, depending on whether the length of the data section is an even or odd number of bytes
	// respectively.
	pad int64
}

// NewReader creates a new reader reading from r. It returns an error if the global archive
// header is missing or malformed.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{r: bufio.NewReader(r)}
	hdr := make([]byte, len(GlobalHeader))
	if _, err := io.ReadFull(rd.r, hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &DecodeError{Offset: 0, Err: ErrInvalidArchiveSignature}
		}
		return nil, fmt.Errorf("ar: %w", err)
	}
	if string(hdr) != GlobalHeader {
		return nil, &DecodeError{Offset: 0, Err: ErrInvalidArchiveSignature}
	}
	rd.off = int64(len(GlobalHeader))
	return rd, nil
}

// Offset returns the offset in the archive of the most recent header returned by Next.
func (rd *Reader) Offset() int64 {
	return rd.hdrOff
}

func (rd *Reader) skipUnread() error {
	if rd.nb > 0 {
		n, err := io.CopyN(io.Discard, rd.r, rd.nb)
		rd.nb -= n
		rd.off += n
		if err != nil {
			return rd.contentError(err)
		}
	}
	if rd.pad > 0 {
		n, err := io.CopyN(io.Discard, rd.r, rd.pad)
		rd.pad -= n
		rd.off += n
		if errors.Is(err, io.EOF) {
			return &DecodeError{
				Offset: rd.hdrOff,
				Err:    fmt.Errorf("%w: '%s' has an odd size", ErrTruncatedPadding, rd.name),
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// contentError converts an early end of input inside a member's content into a DecodeError.
func (rd *Reader) contentError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{
			Offset: rd.hdrOff,
			Err:    fmt.Errorf("%w: '%s' is missing %d bytes", ErrTruncatedContent, rd.name, rd.nb),
		}
	}
	return err
}

// Next skips to the next file in the archive file.
// Returns a Header which contains the metadata about the
// file in the archive. io.EOF is returned at the end of the input.
func (rd *Reader) Next() (*Header, error) {
	if err := rd.skipUnread(); err != nil {
		return nil, err
	}

	rd.hdrOff = rd.off
	headerBuf := make([]byte, HeaderSize)
	n, err := io.ReadFull(rd.r, headerBuf)
	rd.off += int64(n)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	} else if errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &DecodeError{
			Offset: rd.hdrOff,
			Err:    fmt.Errorf("%w: %d of %d bytes", ErrTruncatedHeader, n, HeaderSize),
		}
	} else if err != nil {
		return nil, err
	}

	header, err := parseHeader(headerBuf)
	if err != nil {
		return nil, &DecodeError{Offset: rd.hdrOff, Err: err}
	}
	rd.name = header.Name
	rd.nb = header.Size
	rd.pad = padding(header.Size)
	return &header, nil
}

// Read reads data from the current entry in the archive.
func (rd *Reader) Read(b []byte) (n int, err error) {
	if rd.nb == 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > rd.nb {
		b = b[0:rd.nb]
	}
	n, err = rd.r.Read(b)
	rd.nb -= int64(n)
	rd.off += int64(n)
	if err != nil && rd.nb > 0 {
		return n, rd.contentError(err)
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return
}
