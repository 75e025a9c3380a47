package protocol

// Building is a structure owned by a player, complete or in progress.
type Building struct {
	Foundation        Card     `json:"foundation" yaml:"foundation"`
	Site              Material `json:"site" yaml:"site"`
	Complete          bool     `json:"complete" yaml:"complete"`
	Materials         []Card   `json:"materials" yaml:"materials"`
	StairwayMaterials []Card   `json:"stairwayMaterials" yaml:"stairwayMaterials"`
}

const (
	buildingHeadLength   = 6 // foundation, site, complete, 3 material slots
	buildingMaterialSlot = 3
)

// ReadBuilding decodes one building record:
//
//	<length> <foundation> <site> <complete> <mat1> <mat2> <mat3> <stairway>...
//
// length counts the bytes after itself. Material slots holding 0 are empty.
func ReadBuilding(c *Cursor) (Building, error) {
	start := c.Offset()
	length, err := c.U8()
	if err != nil {
		return Building{}, err
	}
	if length < buildingHeadLength {
		return Building{}, newDecodeError(ErrInvalidRecordLength, start,
			"building length %d is shorter than its %d byte head", length, buildingHeadLength)
	}

	body, err := c.Bytes(int(length))
	if err != nil {
		return Building{}, err
	}

	site, ok := materialFromWire(body[1])
	if !ok {
		return Building{}, enumError(TableMaterial, int(body[1]), start+2)
	}

	building := Building{
		Foundation:        cardFromWire(body[0]),
		Site:              site,
		Complete:          body[2] != 0,
		Materials:         make([]Card, 0, buildingMaterialSlot),
		StairwayMaterials: make([]Card, 0, int(length)-buildingHeadLength),
	}

	for _, b := range body[3:buildingHeadLength] {
		if b == emptySlotByte {
			continue
		}
		building.Materials = append(building.Materials, cardFromWire(b))
	}
	for _, b := range body[buildingHeadLength:] {
		building.StairwayMaterials = append(building.StairwayMaterials, cardFromWire(b))
	}

	return building, nil
}

func WriteBuilding(w *Writer, b Building) error {
	if len(b.Materials) > buildingMaterialSlot {
		return invalidValue("building has %d materials, at most %d fit", len(b.Materials), buildingMaterialSlot)
	}
	length := buildingHeadLength + len(b.StairwayMaterials)
	if length > 0xFF {
		return invalidValue("building has %d stairway materials", len(b.StairwayMaterials))
	}

	foundation, ok := cardToWire(b.Foundation)
	if !ok {
		return invalidValue("foundation card %s", b.Foundation)
	}
	site, ok := materialToWire(b.Site)
	if !ok {
		return invalidValue("site %s", b.Site)
	}

	w.U8(uint8(length))
	w.U8(foundation)
	w.U8(site)
	w.Bool(b.Complete)

	for i := 0; i < buildingMaterialSlot; i++ {
		if i >= len(b.Materials) {
			w.U8(emptySlotByte)
			continue
		}
		material, ok := cardToWire(b.Materials[i])
		if !ok || material == emptySlotByte {
			return invalidValue("material card %s", b.Materials[i])
		}
		w.U8(material)
	}

	for _, card := range b.StairwayMaterials {
		material, ok := cardToWire(card)
		if !ok {
			return invalidValue("stairway material card %s", card)
		}
		w.U8(material)
	}
	return nil
}
