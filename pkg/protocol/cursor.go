package protocol

import (
	"encoding/binary"
)

// Cursor reads a payload front to back. All integers are big-endian.
// Reads never go past the end of the buffer and there is no way to
// step back: callers that need look-ahead use Peek or remember Offset.
type Cursor struct {
	data   []byte
	offset int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Offset() int {
	return c.offset
}

func (c *Cursor) Remaining() int {
	return len(c.data) - c.offset
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return newDecodeError(ErrTruncatedBuffer, c.offset,
			"need %d bytes, %d remain", n, c.Remaining())
	}
	return nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.data[c.offset], nil
}

func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.offset]
	c.offset++
	return v, nil
}

func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.data[c.offset:])
	c.offset += 2
	return v, nil
}

func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.data[c.offset:])
	c.offset += 4
	return v, nil
}

func (c *Cursor) Bool() (bool, error) {
	v, err := c.U8()
	return v != 0, err
}

// Bytes returns the next n bytes. The returned slice aliases the
// underlying buffer and must not be modified.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	end := c.offset + n
	v := c.data[c.offset:end:end]
	c.offset = end
	return v, nil
}

func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.offset += n
	return nil
}
