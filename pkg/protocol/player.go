package protocol

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Player is one seat at the table as seen by the snapshot's viewer.
type Player struct {
	Name               string     `json:"name" yaml:"name"`
	UID                uint32     `json:"uid" yaml:"uid"`
	FountainCard       *Card      `json:"fountainCard" yaml:"fountainCard"` // nil when the player has none
	CampActionCount    uint8      `json:"campActionCount" yaml:"campActionCount"`
	PerformedCraftsman bool       `json:"performedCraftsman" yaml:"performedCraftsman"`
	Influence          []Material `json:"influence" yaml:"influence"`

	Camp         Zone `json:"camp" yaml:"camp"`
	Hand         Zone `json:"hand" yaml:"hand"` // orders first, then jacks
	Stockpile    Zone `json:"stockpile" yaml:"stockpile"`
	Clientele    Zone `json:"clientele" yaml:"clientele"`
	Revealed     Zone `json:"revealed" yaml:"revealed"`
	PrevRevealed Zone `json:"prevRevealed" yaml:"prevRevealed"`
	ClientsGiven Zone `json:"clientsGiven" yaml:"clientsGiven"`
	Vault        Zone `json:"vault" yaml:"vault"`

	Buildings []Building `json:"buildings" yaml:"buildings"`
}

const (
	nameFieldLength  = 20
	siteCountsLength = 6
)

// ReadPlayer decodes one player record:
//
//	<name length> <name: 20 bytes> <uid: u32> <fountain card> <camp actions>
//	<performed craftsman> <influence counts: 6 bytes>
//	<camp> <orders in hand> <jacks in hand> <stockpile> <clientele>
//	<revealed> <prev revealed> <clients given> <vault>
//	<n buildings> <building>...
func ReadPlayer(c *Cursor) (Player, error) {
	var p Player
	var err error

	if p.Name, err = readName(c); err != nil {
		return Player{}, errors.Wrap(err, "name")
	}
	if p.UID, err = c.U32(); err != nil {
		return Player{}, errors.Wrap(err, "uid")
	}

	fountain, err := c.U8()
	if err != nil {
		return Player{}, errors.Wrap(err, "fountain card")
	}
	if fountain != noneByte {
		card := cardFromWire(fountain)
		p.FountainCard = &card
	}

	if p.CampActionCount, err = c.U8(); err != nil {
		return Player{}, errors.Wrap(err, "camp actions")
	}
	if p.PerformedCraftsman, err = c.Bool(); err != nil {
		return Player{}, errors.Wrap(err, "performed craftsman")
	}
	if p.Influence, err = readSiteCounts(c); err != nil {
		return Player{}, errors.Wrap(err, "influence")
	}

	var orders, jacks Zone
	zones := []struct {
		name string
		zone *Zone
	}{
		{"camp", &p.Camp},
		{"orders in hand", &orders},
		{"jacks in hand", &jacks},
		{"stockpile", &p.Stockpile},
		{"clientele", &p.Clientele},
		{"revealed", &p.Revealed},
		{"prev revealed", &p.PrevRevealed},
		{"clients given", &p.ClientsGiven},
		{"vault", &p.Vault},
	}
	for _, z := range zones {
		if *z.zone, err = ReadZone(c); err != nil {
			return Player{}, errors.Wrap(err, z.name)
		}
	}
	p.Hand = append(orders, jacks...)

	count, err := c.U8()
	if err != nil {
		return Player{}, errors.Wrap(err, "building count")
	}
	p.Buildings = make([]Building, 0, count)
	for i := 0; i < int(count); i++ {
		building, err := ReadBuilding(c)
		if err != nil {
			return Player{}, errors.Wrapf(err, "building %d", i)
		}
		p.Buildings = append(p.Buildings, building)
	}

	return p, nil
}

func WritePlayer(w *Writer, p Player) error {
	if err := writeName(w, p.Name); err != nil {
		return errors.Wrap(err, "name")
	}
	w.U32(p.UID)

	if p.FountainCard == nil {
		w.U8(noneByte)
	} else {
		b, ok := cardToWire(*p.FountainCard)
		if !ok {
			return invalidValue("fountain card %s", *p.FountainCard)
		}
		w.U8(b)
	}

	w.U8(p.CampActionCount)
	w.Bool(p.PerformedCraftsman)
	if err := writeSiteCounts(w, p.Influence); err != nil {
		return errors.Wrap(err, "influence")
	}

	orders := make(Zone, 0, len(p.Hand))
	jacks := make(Zone, 0, len(p.Hand))
	for _, card := range p.Hand {
		if card.IsJack() {
			jacks = append(jacks, card)
		} else {
			orders = append(orders, card)
		}
	}

	zones := []struct {
		name string
		zone Zone
	}{
		{"camp", p.Camp},
		{"orders in hand", orders},
		{"jacks in hand", jacks},
		{"stockpile", p.Stockpile},
		{"clientele", p.Clientele},
		{"revealed", p.Revealed},
		{"prev revealed", p.PrevRevealed},
		{"clients given", p.ClientsGiven},
		{"vault", p.Vault},
	}
	for _, z := range zones {
		if err := WriteZone(w, z.zone); err != nil {
			return errors.Wrap(err, z.name)
		}
	}

	if len(p.Buildings) > 0xFF {
		return invalidValue("%d buildings", len(p.Buildings))
	}
	w.U8(uint8(len(p.Buildings)))
	for i, building := range p.Buildings {
		if err := WriteBuilding(w, building); err != nil {
			return errors.Wrapf(err, "building %d", i)
		}
	}
	return nil
}

// readName reads a length byte followed by a fixed 20 byte field. Only
// the first length bytes belong to the name.
func readName(c *Cursor) (string, error) {
	start := c.Offset()
	length, err := c.U8()
	if err != nil {
		return "", err
	}
	field, err := c.Bytes(nameFieldLength)
	if err != nil {
		return "", err
	}
	if int(length) > nameFieldLength {
		return "", newDecodeError(ErrInvalidRecordLength, start,
			"name length %d exceeds the %d byte field", length, nameFieldLength)
	}
	return string(field[:length]), nil
}

func writeName(w *Writer, name string) error {
	if len(name) > nameFieldLength {
		return invalidValue("name %q is longer than %d bytes", name, nameFieldLength)
	}
	field := make([]byte, nameFieldLength)
	copy(field, name)
	w.U8(uint8(len(name)))
	w.Write(field)
	return nil
}

func readSiteCounts(c *Cursor) ([]Material, error) {
	counts, err := c.Bytes(siteCountsLength)
	if err != nil {
		return nil, err
	}
	return expandCounts(counts), nil
}

// writeSiteCounts is the inverse of expandCounts. Order within the list
// does not survive: decoding always yields canonical order.
func writeSiteCounts(w *Writer, materials []Material) error {
	counts := make([]byte, siteCountsLength)
	for _, m := range materials {
		i := slices.Index(Materials, m)
		if i < 0 {
			return invalidValue("material %s", m)
		}
		if counts[i] == 0xFF {
			return invalidValue("more than 255 %s", m)
		}
		counts[i]++
	}
	w.Write(counts)
	return nil
}

// TrimName drops NUL and space padding some servers leave inside the declared name length.
func TrimName(name string) string {
	return strings.TrimRight(name, "\x00 ")
}
