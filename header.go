package arpack

import "fmt"

// formatHeader renders hdr into the fixed-width layout of a member header. Nothing is returned
// unless every field fits.
func formatHeader(hdr *Header) ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte
	s := slicer(buf[:])

	if err := formatName(s.next(nameLen), hdr.Name); err != nil {
		return buf, err
	}
	if err := formatDecimal(s.next(mtimeLen), "modification time", hdr.ModTime); err != nil {
		return buf, err
	}
	if err := formatDecimal(s.next(uidLen), "owner id", int64(hdr.Uid)); err != nil {
		return buf, err
	}
	if err := formatDecimal(s.next(gidLen), "group id", int64(hdr.Gid)); err != nil {
		return buf, err
	}
	if err := formatOctal(s.next(modeLen), "mode", hdr.Mode); err != nil {
		return buf, err
	}
	if err := formatDecimal(s.next(sizeLen), "size", hdr.Size); err != nil {
		return buf, err
	}
	copy(s.next(magicLen), EntryMagic)
	return buf, nil
}

// parseHeader decodes a member header. b must hold at least HeaderSize bytes.
func parseHeader(b []byte) (Header, error) {
	var hdr Header
	if string(b[magicOff:magicOff+magicLen]) != EntryMagic {
		return hdr, fmt.Errorf("%w: %q", ErrInvalidMemberMagic, b[magicOff:magicOff+magicLen])
	}

	hdr.Name = parseName(b[nameOff : nameOff+nameLen])

	var err error
	if hdr.ModTime, err = parseDecimal(b[mtimeOff:mtimeOff+mtimeLen], "modification time"); err != nil {
		return hdr, fieldError(err, mtimeOff)
	}
	uid, err := parseDecimal(b[uidOff:uidOff+uidLen], "owner id")
	if err != nil {
		return hdr, fieldError(err, uidOff)
	}
	gid, err := parseDecimal(b[gidOff:gidOff+gidLen], "group id")
	if err != nil {
		return hdr, fieldError(err, gidOff)
	}
	hdr.Uid, hdr.Gid = int(uid), int(gid)
	if hdr.Mode, err = parseOctal(b[modeOff:modeOff+modeLen], "mode"); err != nil {
		return hdr, fieldError(err, modeOff)
	}
	if hdr.Size, err = parseDecimal(b[sizeOff:sizeOff+sizeLen], "size"); err != nil {
		return hdr, fieldError(err, sizeOff)
	}
	return hdr, nil
}

func fieldError(err error, off int) error {
	return fmt.Errorf("%w at header byte %d", err, off)
}
