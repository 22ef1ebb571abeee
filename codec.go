package arpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// A Codec encodes and decodes whole archives. Every Codec produces the same bytes for the same
// members, and decodes any archive to the same members, so callers pick one per call site.
type Codec interface {
	// Name identifies the codec, e.g. on the command line.
	Name() string
	Encode(members []Member) ([]byte, error)
	Decode(data []byte) ([]Member, error)
}

var (
	// BufferCodec builds and parses archives directly in memory.
	BufferCodec Codec = bufferCodec{}

	// StreamCodec builds and parses archives through a Writer and a Reader.
	StreamCodec Codec = streamCodec{}
)

var codecs = map[string]Codec{
	BufferCodec.Name(): BufferCodec,
	StreamCodec.Name(): StreamCodec,
}

// Codecs returns every available codec, ordered by name.
func Codecs() []Codec {
	all := make([]Codec, 0, len(codecs))
	for _, c := range codecs {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// CodecNames returns the names of every available codec, ordered by name.
func CodecNames() []string {
	var names []string
	for _, c := range Codecs() {
		names = append(names, c.Name())
	}
	return names
}

// CodecByName returns the codec with the given name.
func CodecByName(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("ar: unknown codec %q (available: %s)", name, strings.Join(CodecNames(), ", "))
	}
	return c, nil
}

type bufferCodec struct{}

func (bufferCodec) Name() string {
	return "buffer"
}

func (bufferCodec) Encode(members []Member) ([]byte, error) {
	return Encode(members)
}

func (bufferCodec) Decode(data []byte) ([]Member, error) {
	return Decode(data)
}

type streamCodec struct{}

func (streamCodec) Name() string {
	return "stream"
}

func (streamCodec) Encode(members []Member) ([]byte, error) {
	var buf bytes.Buffer
	aw := NewWriter(&buf)
	for i := range members {
		if err := aw.WriteMember(&members[i]); err != nil {
			return nil, err
		}
	}
	if err := aw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (streamCodec) Decode(data []byte) ([]Member, error) {
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var members []Member
	for {
		hdr, err := rd.Next()
		if err == io.EOF {
			return members, nil
		} else if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rd)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Header: *hdr, Content: content})
	}
}

// Verify encodes members with c, decodes the result, and checks that the same members come back.
func Verify(c Codec, members []Member) error {
	data, err := c.Encode(members)
	if err != nil {
		return err
	}
	decoded, err := c.Decode(data)
	if err != nil {
		return err
	}
	if len(decoded) != len(members) {
		return fmt.Errorf("ar: %s codec: %d members encoded, %d decoded", c.Name(), len(members), len(decoded))
	}
	for i := range members {
		if decoded[i].Header != members[i].Header {
			return fmt.Errorf("ar: %s codec: member %d header %+v decoded as %+v", c.Name(), i, members[i].Header, decoded[i].Header)
		}
		if !bytes.Equal(decoded[i].Content, members[i].Content) {
			return fmt.Errorf("ar: %s codec: member %d '%s' content differs", c.Name(), i, members[i].Name)
		}
	}
	return nil
}
