package protocol

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/brianvoe/gofakeit/v6"
)

// newTestSnapshot builds a snapshot as seen by player 0. Lists are built
// in the order the decoder produces them, so decoding its encoding
// yields an equal value once the header is copied over.
func newTestSnapshot(players int) *Snapshot {
	legionary := players - 1
	s := &Snapshot{
		GameID:               gofakeit.Uint32(),
		TurnNumber:           uint32(gofakeit.IntRange(1, 100)),
		ActionNumber:         uint32(gofakeit.IntRange(1, 1000)),
		Host:                 "host",
		LegionaryCount:       1,
		UsedOutOfTown:        false,
		OutOfTownAllowed:     true,
		RoleLed:              RoleLegionary,
		ExpectedAction:       ActionLegionary,
		LegionaryPlayerIndex: &legionary,
		LeaderIndex:          0,
		ActivePlayerIndex:    legionary,
		LogLength:            uint32(gofakeit.IntRange(0, 500)),
		InTownSites:          []Material{MaterialMarble, MaterialRubble, MaterialRubble, MaterialStone},
		OutOfTownSites:       []Material{},
		Jacks:                Zone{CardOf(0), CardOf(1), CardOf(2)},
		Library:              Zone{HiddenCard, HiddenCard, HiddenCard, HiddenCard},
		Pool:                 Zone{CardOf(40), CardOf(41)},
		Players:              make([]Player, 0, players),
		Stack:                make([]Frame, 0, 2),
	}

	for i := 0; i < players; i++ {
		s.Players = append(s.Players, newTestPlayer(i, i == 0))
	}
	s.Winners = []*Player{}

	s.CurrentFrame = &Frame{
		Function: FunctionAwaitAction,
		Args:     []FrameArg{ActionArg(ActionLegionary), PlayerArg(legionary)},
	}
	s.Stack = append(s.Stack,
		Frame{Function: FunctionAdvanceTurn, Args: []FrameArg{}},
		Frame{
			Function: FunctionPerformRoleAction,
			Args:     []FrameArg{PlayerArg(0), RoleArg(RoleLegionary)},
		},
	)
	return s
}

func newTestPlayer(index int, visible bool) Player {
	hand := Zone{CardOf(uint8(50 + index)), CardOf(uint8(60 + index)), CardOf(3)}
	vault := Zone{CardOf(uint8(70 + index))}
	if !visible {
		hand = Zone{HiddenCard, HiddenCard, CardOf(4)}
		vault = Zone{HiddenCard}
	}
	fountain := CardOf(uint8(80 + index))

	return Player{
		Name:               gofakeit.LetterN(uint(gofakeit.IntRange(1, 20))),
		UID:                gofakeit.Uint32(),
		FountainCard:       &fountain,
		CampActionCount:    1,
		PerformedCraftsman: index%2 == 0,
		Influence:          []Material{MaterialWood, MaterialBrick},
		Camp:               Zone{CardOf(uint8(90 + index))},
		Hand:               hand,
		Stockpile:          Zone{CardOf(100), CardOf(101)},
		Clientele:          Zone{},
		Revealed:           Zone{},
		PrevRevealed:       Zone{},
		ClientsGiven:       Zone{},
		Vault:              vault,
		Buildings: []Building{{
			Foundation:        CardOf(uint8(110 + index)),
			Site:              MaterialWood,
			Complete:          false,
			Materials:         []Card{CardOf(120)},
			StairwayMaterials: []Card{},
		}},
	}
}

func mustEncode(s *Snapshot) []byte {
	data, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return data
}

// reseal recomputes the checksum of a hand-edited payload.
func reseal(data []byte) []byte {
	binary.BigEndian.PutUint32(data[8:headerLength], crc32.ChecksumIEEE(data[headerLength:]))
	return data
}
