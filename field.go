package arpack

import (
	"bytes"
	"fmt"
	"strconv"
)

// setField copies s into b and pads the remainder of b with spaces.
func setField(b []byte, s string) {
	n := copy(b, s)
	for i := n; i < len(b); i++ {
		b[i] = ' '
	}
}

// formatName writes a member name followed by '/' into the name field.
func formatName(b []byte, name string) error {
	if len(name)+1 > len(b) {
		return fmt.Errorf("%w: %d bytes, at most %d allowed", ErrFilenameTooLong, len(name), len(b)-1)
	}
	setField(b, name+"/")
	return nil
}

func formatDecimal(b []byte, field string, x int64) error {
	return formatNumber(b, field, x, 10)
}

func formatOctal(b []byte, field string, x int64) error {
	return formatNumber(b, field, x, 8)
}

func formatNumber(b []byte, field string, x int64, base int) error {
	if x < 0 {
		return fmt.Errorf("%w: %s %d is negative", ErrFieldOverflow, field, x)
	}
	s := strconv.FormatInt(x, base)
	if len(s) > len(b) {
		return fmt.Errorf("%w: %s %s needs %d bytes, field holds %d", ErrFieldOverflow, field, s, len(s), len(b))
	}
	setField(b, s)
	return nil
}

// trimField strips the space padding from the end of a field.
func trimField(b []byte) []byte {
	return bytes.TrimRight(b, " ")
}

// parseName returns the member name stored in a name field, without its padding and trailing '/'.
func parseName(b []byte) string {
	return string(bytes.TrimSuffix(trimField(b), []byte("/")))
}

func parseDecimal(b []byte, field string) (int64, error) {
	return parseNumber(b, field, 10)
}

func parseOctal(b []byte, field string) (int64, error) {
	return parseNumber(b, field, 8)
}

func parseNumber(b []byte, field string, base int) (int64, error) {
	s := string(trimField(b))
	n, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a base %d number", ErrMalformedField, field, s, base)
	}
	return int64(n), nil
}
