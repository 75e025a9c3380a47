package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadZone(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		expected Zone
		consumed int
	}{
		{"empty", []byte{0x00}, Zone{}, 1},
		{"compact hidden", []byte{0x03, 0xFF}, Zone{HiddenCard, HiddenCard, HiddenCard}, 2},
		{"visible", []byte{0x03, 0x05, 0x06, 0x07}, Zone{CardOf(5), CardOf(6), CardOf(7)}, 4},
		{"mixed", []byte{0x02, 0xFE, 0x2A}, Zone{HiddenCard, CardOf(42)}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Trailing bytes belong to the next record.
			data := append(append([]byte{}, tc.data...), 0x99, 0x98)
			c := NewCursor(data)

			zone, err := ReadZone(c)
			require.NoError(t, err)
			require.Equal(t, tc.expected, zone)
			require.Equal(t, tc.consumed, c.Offset())

			next, err := c.U8()
			require.NoError(t, err)
			require.Equal(t, byte(0x99), next)
		})
	}
}

func TestReadZoneTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x03}, {0x03, 0x05, 0x06}} {
		_, err := ReadZone(NewCursor(data))
		require.ErrorIs(t, err, ErrTruncatedBuffer, "data %v", data)
	}
}

func TestWriteZone(t *testing.T) {
	cases := []struct {
		name     string
		zone     Zone
		expected []byte
	}{
		{"nil", nil, []byte{0x00}},
		{"empty", Zone{}, []byte{0x00}},
		{"hidden", Zone{HiddenCard, HiddenCard}, []byte{0x02, 0xFF}},
		{"visible", Zone{CardOf(0), CardOf(9)}, []byte{0x02, 0x00, 0x09}},
		{"mixed", Zone{CardOf(9), HiddenCard}, []byte{0x02, 0x09, 0xFE}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(8)
			require.NoError(t, WriteZone(w, tc.zone))
			require.Equal(t, tc.expected, w.Bytes())
		})
	}
}

func TestWriteZoneLimits(t *testing.T) {
	w := NewWriter(0)
	err := WriteZone(w, make(Zone, 256))
	require.ErrorIs(t, err, ErrInvalidValue)

	err = WriteZone(w, Zone{CardOf(0xFE)})
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestZoneHidden(t *testing.T) {
	require.False(t, Zone{}.Hidden())
	require.False(t, Zone{HiddenCard, CardOf(7)}.Hidden())
	require.True(t, Zone{HiddenCard}.Hidden())
}
