package arpack

import "bytes"

// Encode serializes members, in order, into a complete archive. An empty list produces an
// archive holding only the global header.
//
// If any member cannot be encoded, Encode returns an *EncodeError identifying it and no output.
func Encode(members []Member) ([]byte, error) {
	total := int64(len(GlobalHeader))
	for i := range members {
		total += members[i].encodedLen()
	}

	var buf bytes.Buffer
	buf.Grow(int(total))
	buf.WriteString(GlobalHeader)
	for i := range members {
		if err := appendMember(&buf, &members[i]); err != nil {
			return nil, &EncodeError{Index: i, Name: members[i].Name, Err: err}
		}
	}
	return buf.Bytes(), nil
}

// appendMember writes the header, content and padding of m to buf. Nothing is written if the
// header cannot be formatted.
func appendMember(buf *bytes.Buffer, m *Member) error {
	hdr, err := m.header()
	if err != nil {
		return err
	}
	buf.Write(hdr[:])
	buf.Write(m.Content)
	if padding(m.Size) == 1 {
		buf.WriteByte(PadByte)
	}
	return nil
}
