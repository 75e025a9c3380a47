package protocol

// Zone is an ordered list of cards. A zone record is either
//
//	<length> <card1> ... <cardN>    one byte per card, 0xFE for a hidden card
//	<length> 0xFF                   every card hidden (compact form)
//
// The compact form is what keeps privatized snapshots small: other
// players' hands and the library are sent as two bytes each.
type Zone []Card

const maxZoneLength = 0xFF

// Hidden reports whether the zone is non-empty and every card in it is hidden.
func (z Zone) Hidden() bool {
	if len(z) == 0 {
		return false
	}
	for _, card := range z {
		if !card.Hidden() {
			return false
		}
	}
	return true
}

// ReadZone decodes one zone record. It consumes 1 byte for an empty
// zone, 2 bytes for a compact hidden zone and 1+length bytes otherwise.
func ReadZone(c *Cursor) (Zone, error) {
	length, err := c.U8()
	if err != nil {
		return nil, err
	}

	zone := make(Zone, length)
	if length == 0 {
		return zone, nil
	}

	first, err := c.Peek()
	if err != nil {
		return nil, err
	}

	if first == noneByte {
		_ = c.Skip(1)
		for i := range zone {
			zone[i] = HiddenCard
		}
		return zone, nil
	}

	idents, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	for i, b := range idents {
		zone[i] = cardFromWire(b)
	}
	return zone, nil
}

// WriteZone encodes a zone, choosing the compact form whenever every card is hidden.
func WriteZone(w *Writer, z Zone) error {
	if len(z) > maxZoneLength {
		return invalidValue("zone has %d cards, at most %d fit", len(z), maxZoneLength)
	}

	w.U8(uint8(len(z)))
	if z.Hidden() {
		w.U8(noneByte)
		return nil
	}

	// Idents 0xFE and 0xFF are reserved, so a visible zone never starts
	// with the compact marker.
	for i, card := range z {
		b, ok := cardToWire(card)
		if !ok {
			return invalidValue("card %s at position %d", card, i)
		}
		w.U8(b)
	}
	return nil
}
