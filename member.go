package arpack

import (
	"fmt"
	"time"
)

// Header holds the metadata stored in the fixed-width header of one archive member.
type Header struct {
	// Name identifies the member. It is stored followed by '/', so it may be at most
	// MaxNameLen bytes long.
	Name string

	// ModTime is the modification time in seconds since the Unix epoch.
	ModTime int64

	Uid  int
	Gid  int
	Mode int64

	// Size is the length of the member's content in bytes.
	Size int64
}

// Time returns the modification time of the member.
func (h *Header) Time() time.Time {
	return time.Unix(h.ModTime, 0)
}

// Member is one archive member: its header and the content that follows it.
// Members are not modified once built.
type Member struct {
	Header
	Content []byte
}

// NewMember returns a Member with the given metadata and content. The header's Size is set from
// the length of content.
func NewMember(hdr Header, content []byte) Member {
	hdr.Size = int64(len(content))
	return Member{Header: hdr, Content: content}
}

// encodedLen returns the number of bytes the member's content occupies in an archive.
func (m *Member) encodedLen() int64 {
	n := int64(len(m.Content))
	return HeaderSize + n + padding(n)
}

// header returns the encoded header of m after checking that it describes m's content.
func (m *Member) header() ([HeaderSize]byte, error) {
	hdr, err := formatHeader(&m.Header)
	if err != nil {
		return hdr, err
	}
	if m.Size != int64(len(m.Content)) {
		return hdr, fmt.Errorf("%w: size %d, content %d bytes", ErrSizeMismatch, m.Size, len(m.Content))
	}
	return hdr, nil
}
