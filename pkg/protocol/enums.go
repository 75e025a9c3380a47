package protocol

import (
	"fmt"
	"strconv"
)

// Wire sentinels. Each one is interpreted in exactly one place below.
const (
	noneByte       byte = 0xFF // no Role, no Material, no optional index, compact hidden zone
	hiddenCardByte byte = 0xFE // card present but identity hidden
	emptySlotByte  byte = 0x00 // empty building material slot
)

// Role is one of the six roles in canonical order. The zero value is RoleNone.
type Role uint8

const (
	RoleNone Role = iota
	RolePatron
	RoleLaborer
	RoleArchitect
	RoleCraftsman
	RoleLegionary
	RoleMerchant
)

var roleNames = [...]string{
	RoleNone:      "",
	RolePatron:    "Patron",
	RoleLaborer:   "Laborer",
	RoleArchitect: "Architect",
	RoleCraftsman: "Craftsman",
	RoleLegionary: "Legionary",
	RoleMerchant:  "Merchant",
}

// Roles lists every role in canonical order.
var Roles = []Role{RolePatron, RoleLaborer, RoleArchitect, RoleCraftsman, RoleLegionary, RoleMerchant}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Material returns the material associated with the role.
func (r Role) Material() Material {
	if r == RoleNone || int(r) >= len(roleNames) {
		return MaterialNone
	}
	return Material(r)
}

func roleFromWire(b byte) (Role, bool) {
	if b == noneByte {
		return RoleNone, true
	}
	if int(b) >= len(Roles) {
		return RoleNone, false
	}
	return Role(b + 1), true
}

func roleToWire(r Role) (byte, bool) {
	if r == RoleNone {
		return noneByte, true
	}
	if int(r) >= len(roleNames) {
		return 0, false
	}
	return byte(r - 1), true
}

// Material is one of the six materials in canonical order. The zero value is MaterialNone.
// It is not a byte type so that material lists encode as lists, not byte strings.
type Material int

const (
	MaterialNone Material = iota
	MaterialMarble
	MaterialRubble
	MaterialConcrete
	MaterialWood
	MaterialBrick
	MaterialStone
)

var materialNames = [...]string{
	MaterialNone:     "",
	MaterialMarble:   "Marble",
	MaterialRubble:   "Rubble",
	MaterialConcrete: "Concrete",
	MaterialWood:     "Wood",
	MaterialBrick:    "Brick",
	MaterialStone:    "Stone",
}

// Materials lists every material in canonical order.
var Materials = []Material{
	MaterialMarble, MaterialRubble, MaterialConcrete,
	MaterialWood, MaterialBrick, MaterialStone,
}

func (m Material) String() string {
	if m >= 0 && int(m) < len(materialNames) {
		return materialNames[m]
	}
	return fmt.Sprintf("Material(%d)", m)
}

func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func materialFromWire(b byte) (Material, bool) {
	if b == noneByte {
		return MaterialNone, true
	}
	if int(b) >= len(Materials) {
		return MaterialNone, false
	}
	return Material(b + 1), true
}

func materialToWire(m Material) (byte, bool) {
	if m == MaterialNone {
		return noneByte, true
	}
	if m < 0 || int(m) >= len(materialNames) {
		return 0, false
	}
	return byte(m - 1), true
}

// Function identifies the server-side routine a stack frame belongs to.
type Function uint8

const (
	FunctionAdvanceTurn Function = iota
	FunctionAwaitAction
	FunctionDoEndTurn
	FunctionDoKidsInPool
	FunctionDoSenate
	FunctionEndTurn
	FunctionKidsInPool
	FunctionPerformClienteleAction
	FunctionPerformPatronAction
	FunctionPerformRoleAction
	FunctionPerformRoleBeingLed
	FunctionPerformThinkerAction
	FunctionTakeTurnStacked
)

var functionNames = [...]string{
	FunctionAdvanceTurn:            "advance_turn",
	FunctionAwaitAction:            "await_action",
	FunctionDoEndTurn:              "do_end_turn",
	FunctionDoKidsInPool:           "do_kids_in_pool",
	FunctionDoSenate:               "do_senate",
	FunctionEndTurn:                "end_turn",
	FunctionKidsInPool:             "kids_in_pool",
	FunctionPerformClienteleAction: "perform_clientele_action",
	FunctionPerformPatronAction:    "perform_patron_action",
	FunctionPerformRoleAction:      "perform_role_action",
	FunctionPerformRoleBeingLed:    "perform_role_being_led",
	FunctionPerformThinkerAction:   "perform_thinker_action",
	FunctionTakeTurnStacked:        "take_turn_stacked",
}

func (f Function) String() string {
	if int(f) < len(functionNames) {
		return functionNames[f]
	}
	return fmt.Sprintf("Function(%d)", f)
}

func (f Function) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f Function) valid() bool {
	return int(f) < len(functionNames)
}

func functionFromWire(b byte) (Function, bool) {
	f := Function(b)
	return f, f.valid()
}

// jackCount is the number of Jacks. They occupy the first card idents.
const jackCount = 6

// Card identifies a card instance by its index in the server card table,
// or stands for a card whose identity is hidden from the viewer.
type Card struct {
	ident  uint8
	hidden bool
}

// HiddenCard is a card the viewer is not allowed to see.
var HiddenCard = Card{hidden: true}

func CardOf(ident uint8) Card {
	return Card{ident: ident}
}

// Ident returns the card table index. ok is false for hidden cards.
func (c Card) Ident() (ident uint8, ok bool) {
	return c.ident, !c.hidden
}

func (c Card) Hidden() bool {
	return c.hidden
}

func (c Card) IsJack() bool {
	return !c.hidden && c.ident < jackCount
}

func (c Card) String() string {
	if c.hidden {
		return "hidden"
	}
	return strconv.Itoa(int(c.ident))
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func cardFromWire(b byte) Card {
	if b == hiddenCardByte {
		return HiddenCard
	}
	return CardOf(b)
}

func cardToWire(c Card) (byte, bool) {
	if c.hidden {
		return hiddenCardByte, true
	}
	if c.ident >= hiddenCardByte {
		return 0, false
	}
	return c.ident, true
}

// expandCounts turns per-material counts in canonical order into a
// list holding one entry per unit.
func expandCounts(counts []byte) []Material {
	total := 0
	for _, n := range counts {
		total += int(n)
	}
	result := make([]Material, 0, total)
	for i, n := range counts {
		for j := 0; j < int(n); j++ {
			result = append(result, Materials[i])
		}
	}
	return result
}
