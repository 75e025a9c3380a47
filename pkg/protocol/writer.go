package protocol

import (
	"encoding/binary"
)

// Writer is the append-only counterpart of Cursor.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

func (w *Writer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}
