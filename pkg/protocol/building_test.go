package protocol

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestReadBuilding(t *testing.T) {
	c := NewCursor([]byte{0x06, 0x0C, 0x02, 0x01, 0x00, 0x07, 0x00, 0x42})

	building, err := ReadBuilding(c)
	require.NoError(t, err)
	require.Equal(t, Building{
		Foundation:        CardOf(12),
		Site:              MaterialConcrete,
		Complete:          true,
		Materials:         []Card{CardOf(7)},
		StairwayMaterials: []Card{},
	}, building)
	require.Equal(t, 7, c.Offset())
}

func TestReadBuildingStairway(t *testing.T) {
	c := NewCursor([]byte{0x08, 0x0C, 0x05, 0x01, 0x14, 0x15, 0x16, 0x30, 0xFE})

	building, err := ReadBuilding(c)
	require.NoError(t, err)
	require.Equal(t, MaterialStone, building.Site)
	require.Equal(t, []Card{CardOf(0x14), CardOf(0x15), CardOf(0x16)}, building.Materials)
	require.Equal(t, []Card{CardOf(0x30), HiddenCard}, building.StairwayMaterials)
	require.Equal(t, 0, c.Remaining())
}

func TestReadBuildingErrors(t *testing.T) {
	_, err := ReadBuilding(NewCursor([]byte{0x05, 0x0C, 0x02, 0x01, 0x00, 0x00}))
	require.ErrorIs(t, err, ErrInvalidRecordLength)

	_, err = ReadBuilding(NewCursor([]byte{0x07, 0x0C, 0x02, 0x01, 0x00, 0x00, 0x00}))
	require.ErrorIs(t, err, ErrTruncatedBuffer)

	_, err = ReadBuilding(NewCursor([]byte{0x06, 0x0C, 0x09, 0x01, 0x00, 0x00, 0x00}))
	require.ErrorIs(t, err, ErrInvalidEnumIndex)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	require.Equal(t, TableMaterial, decodeErr.Table)
	require.Equal(t, 9, decodeErr.Index)
	require.Equal(t, 2, decodeErr.Offset)
}

func TestWriteBuilding(t *testing.T) {
	w := NewWriter(16)
	err := WriteBuilding(w, Building{
		Foundation:        CardOf(12),
		Site:              MaterialConcrete,
		Complete:          true,
		Materials:         []Card{CardOf(7)},
		StairwayMaterials: []Card{CardOf(8)},
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x07, 0x0C, 0x02, 0x01, 0x07, 0x00, 0x00, 0x08}, w.Bytes())

	err = WriteBuilding(w, Building{Foundation: CardOf(12), Site: MaterialMarble, Materials: make([]Card, 4)})
	require.ErrorIs(t, err, ErrInvalidValue)

	// Card 0 can't sit in a material slot: 0 marks the slot empty.
	err = WriteBuilding(w, Building{Foundation: CardOf(12), Site: MaterialMarble, Materials: []Card{CardOf(0)}})
	require.ErrorIs(t, err, ErrInvalidValue)
}
