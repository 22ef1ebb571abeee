package arpack

const (
	// GlobalHeader is the magic string at the start of every archive.
	GlobalHeader = "!<arch>\n"

	// EntryMagic terminates every member header.
	EntryMagic = "`\n"

	// PadByte follows the content of every member with an odd size.
	PadByte = '\n'
)

// Offsets and widths of the fields of a member header.
const (
	nameOff  = 0
	nameLen  = 16
	mtimeOff = nameOff + nameLen
	mtimeLen = 12
	uidOff   = mtimeOff + mtimeLen
	uidLen   = 6
	gidOff   = uidOff + uidLen
	gidLen   = 6
	modeOff  = gidOff + gidLen
	modeLen  = 8
	sizeOff  = modeOff + modeLen
	sizeLen  = 10
	magicOff = sizeOff + sizeLen
	magicLen = 2

	// HeaderSize is the length in bytes of a member header.
	HeaderSize = magicOff + magicLen

	// MaxNameLen is the longest member name that fits the name field
	// alongside its trailing '/'.
	MaxNameLen = nameLen - 1
)

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}

// padding returns the number of pad bytes that follow content of the given size.
func padding(size int64) int64 {
	return size & 1
}
