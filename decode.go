package arpack

import (
	"bytes"
	"fmt"
)

// Decode parses a complete archive into its members, in archive order.
//
// Member boundaries are found only from the fixed header layout and each header's declared size;
// the content is never inspected. Decoding stops at the first inconsistency with a *DecodeError
// carrying the offset of the header at fault. Returned members own copies of their content.
func Decode(data []byte) ([]Member, error) {
	d := decoder{data: data}
	if err := d.globalHeader(); err != nil {
		return nil, err
	}
	var members []Member
	for d.off < int64(len(d.data)) {
		m, err := d.member()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

type decoder struct {
	data []byte
	off  int64
}

func (d *decoder) remaining() int64 {
	return int64(len(d.data)) - d.off
}

func (d *decoder) globalHeader() error {
	if !bytes.HasPrefix(d.data, []byte(GlobalHeader)) {
		return &DecodeError{Offset: 0, Err: ErrInvalidArchiveSignature}
	}
	d.off = int64(len(GlobalHeader))
	return nil
}

// member decodes the member whose header starts at the current offset and advances past its
// content and padding.
func (d *decoder) member() (Member, error) {
	start := d.off
	if d.remaining() < HeaderSize {
		return Member{}, &DecodeError{
			Offset: start,
			Err:    fmt.Errorf("%w: %d of %d bytes", ErrTruncatedHeader, d.remaining(), HeaderSize),
		}
	}
	hdr, err := parseHeader(d.data[d.off : d.off+HeaderSize])
	if err != nil {
		return Member{}, &DecodeError{Offset: start, Err: err}
	}
	d.off += HeaderSize

	if hdr.Size > d.remaining() {
		return Member{}, &DecodeError{
			Offset: start,
			Err:    fmt.Errorf("%w: '%s' declares %d bytes, %d remain", ErrTruncatedContent, hdr.Name, hdr.Size, d.remaining()),
		}
	}
	content := bytes.Clone(d.data[d.off : d.off+hdr.Size])
	d.off += hdr.Size

	if pad := padding(hdr.Size); pad > 0 {
		if d.remaining() < pad {
			return Member{}, &DecodeError{
				Offset: start,
				Err:    fmt.Errorf("%w: '%s' has odd size %d", ErrTruncatedPadding, hdr.Name, hdr.Size),
			}
		}
		d.off += pad
	}
	return Member{Header: hdr, Content: content}, nil
}
