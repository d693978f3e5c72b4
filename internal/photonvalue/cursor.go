package photonvalue

import (
	"encoding/binary"
	"fmt"
	"math"
)

// maxReasonableLength bounds byte-array length prefixes and element counts
// read off the wire. A corrupt or adversarial length prefix (e.g. 0x7fffffff) would
// otherwise drive a multi-gigabyte allocation attempt before the subsequent
// bounds check ever fires.
const maxReasonableLength = 1 << 20

// Cursor reads big-endian primitives from a byte slice, advancing its
// position and refusing to read past the end.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Len() int { return len(c.buf) - c.pos }

func (c *Cursor) Remaining() []byte { return c.buf[c.pos:] }

func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) need(n int, what string) error {
	if n < 0 {
		return newDecodeError(fmt.Sprintf("failed to decode %s, unreasonable size", what))
	}
	if c.Len() < n {
		return newDecodeError(fmt.Sprintf("failed to decode %s, not enough bytes", what))
	}
	return nil
}

func (c *Cursor) Skip(n int) error {
	if err := c.need(n, "skip"); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1, "byte"); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, Wrap(err, "failed to decode bool")
	}
	return b != 0, nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	if err := c.need(2, "int16"); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(c.buf[c.pos:]))
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2, "uint16"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4, "uint32"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	if err := c.need(8, "int64"); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(c.buf[c.pos:]))
	c.pos += 8
	return v, nil
}

func (c *Cursor) ReadFloat32() (float32, error) {
	if err := c.need(4, "float32"); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.BigEndian.Uint32(c.buf[c.pos:]))
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadFloat64() (float64, error) {
	if err := c.need(8, "float64"); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(c.buf[c.pos:]))
	c.pos += 8
	return v, nil
}

// ReadString reads a signed 2-byte length prefix followed by that many
// bytes of UTF-8 text; a negative length is a decode error.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadInt16()
	if err != nil {
		return "", Wrap(err, "failed to decode string length")
	}
	if n < 0 {
		return "", newDecodeError("failed to decode string, unreasonable size")
	}
	if err := c.need(int(n), "string"); err != nil {
		return "", err
	}
	s := string(c.buf[c.pos : c.pos+int(n)])
	c.pos += int(n)
	return s, nil
}

// ReadBytes reads a 4-byte length prefix followed by that many raw bytes.
func (c *Cursor) ReadBytes() ([]byte, error) {
	n, err := c.ReadUint32()
	if err != nil {
		return nil, Wrap(err, "failed to decode byte array length")
	}
	if n > maxReasonableLength {
		return nil, newDecodeError("failed to decode byte array, unreasonable size")
	}
	if err := c.need(int(n), "byte array"); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+int(n)])
	c.pos += int(n)
	return out, nil
}

// ReadCount reads a signed 2-byte element count used as an
// Array/ObjectArray/Dictionary/Parameters/StringArray/BooleanArray prefix.
// Negative or unreasonably large counts are decode errors.
func (c *Cursor) ReadCount() (int, error) {
	n, err := c.ReadInt16()
	if err != nil {
		return 0, Wrap(err, "failed to decode element count")
	}
	if n < 0 {
		return 0, newDecodeError("failed to decode element count, unreasonable size")
	}
	if int(n) > maxReasonableLength {
		return 0, newDecodeError("failed to decode element count, unreasonable size")
	}
	return int(n), nil
}
