package testcommon

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/six78/gtrsnap/pkg/protocol"
)

// FakeSnapshot builds a random, encodable snapshot. Decoding its
// encoding yields an equal value: lists are built in the order the
// decoder produces them.
func FakeSnapshot() *protocol.Snapshot {
	playersCount := gofakeit.IntRange(2, 5)

	s := &protocol.Snapshot{
		GameID:            gofakeit.Uint32(),
		TurnNumber:        uint32(gofakeit.IntRange(1, 200)),
		ActionNumber:      uint32(gofakeit.IntRange(1, 2000)),
		Host:              fakeName(),
		LegionaryCount:    uint8(gofakeit.IntRange(0, 3)),
		UsedOutOfTown:     gofakeit.Bool(),
		OutOfTownAllowed:  gofakeit.Bool(),
		RoleLed:           fakeRole(),
		ExpectedAction:    protocol.Action(gofakeit.IntRange(0, int(protocol.ActionTakeClients))),
		LeaderIndex:       gofakeit.IntRange(0, playersCount-1),
		ActivePlayerIndex: gofakeit.IntRange(0, playersCount-1),
		LogLength:         uint32(gofakeit.IntRange(0, 5000)),
		InTownSites:       FakeSites(3),
		OutOfTownSites:    FakeSites(2),
		Jacks:             FakeZone(gofakeit.IntRange(0, 6), false),
		Library:           FakeZone(gofakeit.IntRange(0, 100), true),
		Pool:              FakeZone(gofakeit.IntRange(0, 10), false),
		Players:           make([]protocol.Player, 0, playersCount),
		Stack:             make([]protocol.Frame, 0, 3),
	}

	if gofakeit.Bool() {
		index := gofakeit.IntRange(0, playersCount-1)
		s.LegionaryPlayerIndex = &index
	}

	for i := 0; i < playersCount; i++ {
		s.Players = append(s.Players, FakePlayer(i == 0))
	}

	s.Winners = make([]*protocol.Player, 0, playersCount)
	if gofakeit.Bool() {
		s.Winners = append(s.Winners, &s.Players[gofakeit.IntRange(0, playersCount-1)])
	}

	leader := s.LeaderIndex
	s.CurrentFrame = &protocol.Frame{
		Function: protocol.FunctionAwaitAction,
		Args:     []protocol.FrameArg{protocol.ActionArg(s.ExpectedAction), protocol.PlayerArg(leader)},
	}
	s.Stack = append(s.Stack,
		protocol.Frame{Function: protocol.FunctionAdvanceTurn, Args: []protocol.FrameArg{}},
		protocol.Frame{
			Function: protocol.FunctionTakeTurnStacked,
			Executed: true,
			Args:     []protocol.FrameArg{protocol.PlayerArg(leader)},
		},
		protocol.Frame{
			Function: protocol.FunctionPerformRoleAction,
			Args:     []protocol.FrameArg{protocol.PlayerArg(leader), protocol.RoleArg(protocol.RoleLaborer)},
		},
	)

	return s
}

// FakePlayer builds a player. Other players' hands are hidden unless visible is set.
func FakePlayer(visible bool) protocol.Player {
	p := protocol.Player{
		Name:               fakeName(),
		UID:                gofakeit.Uint32(),
		CampActionCount:    uint8(gofakeit.IntRange(0, 3)),
		PerformedCraftsman: gofakeit.Bool(),
		Influence:          FakeSites(2),
		Camp:               FakeZone(gofakeit.IntRange(0, 2), false),
		Stockpile:          FakeZone(gofakeit.IntRange(0, 5), false),
		Clientele:          FakeZone(gofakeit.IntRange(0, 4), false),
		Revealed:           FakeZone(gofakeit.IntRange(0, 2), false),
		PrevRevealed:       FakeZone(gofakeit.IntRange(0, 2), false),
		ClientsGiven:       FakeZone(gofakeit.IntRange(0, 1), false),
		Vault:              FakeZone(gofakeit.IntRange(0, 4), !visible),
		Buildings:          make([]protocol.Building, 0, 2),
	}

	orders := FakeZone(gofakeit.IntRange(0, 6), !visible)
	jacks := make(protocol.Zone, gofakeit.IntRange(0, 2))
	for i := range jacks {
		jacks[i] = protocol.CardOf(uint8(gofakeit.IntRange(0, 5)))
	}
	p.Hand = append(orders, jacks...)

	if gofakeit.Bool() {
		card := protocol.CardOf(fakeOrderIdent())
		p.FountainCard = &card
	}

	for i, n := 0, gofakeit.IntRange(0, 2); i < n; i++ {
		p.Buildings = append(p.Buildings, FakeBuilding())
	}
	return p
}

func FakeBuilding() protocol.Building {
	b := protocol.Building{
		Foundation:        protocol.CardOf(fakeOrderIdent()),
		Site:              protocol.Materials[gofakeit.IntRange(0, len(protocol.Materials)-1)],
		Complete:          gofakeit.Bool(),
		Materials:         make([]protocol.Card, 0, 3),
		StairwayMaterials: make([]protocol.Card, 0, 1),
	}
	for i, n := 0, gofakeit.IntRange(0, 3); i < n; i++ {
		b.Materials = append(b.Materials, protocol.CardOf(fakeOrderIdent()))
	}
	if b.Complete && gofakeit.Bool() {
		b.StairwayMaterials = append(b.StairwayMaterials, protocol.CardOf(fakeOrderIdent()))
	}
	return b
}

// FakeZone returns n orders cards, or n hidden cards when hidden is set.
func FakeZone(n int, hidden bool) protocol.Zone {
	zone := make(protocol.Zone, n)
	for i := range zone {
		if hidden {
			zone[i] = protocol.HiddenCard
		} else {
			zone[i] = protocol.CardOf(fakeOrderIdent())
		}
	}
	return zone
}

// FakeSites returns up to limit sites per material in canonical order.
func FakeSites(limit int) []protocol.Material {
	sites := make([]protocol.Material, 0, limit*len(protocol.Materials))
	for _, m := range protocol.Materials {
		for i, n := 0, gofakeit.IntRange(0, limit); i < n; i++ {
			sites = append(sites, m)
		}
	}
	return sites
}

func fakeRole() protocol.Role {
	if gofakeit.Bool() {
		return protocol.RoleNone
	}
	return protocol.Roles[gofakeit.IntRange(0, len(protocol.Roles)-1)]
}

func fakeOrderIdent() uint8 {
	return uint8(gofakeit.IntRange(6, 143))
}

func fakeName() string {
	name := gofakeit.Username()
	if len(name) > 20 {
		name = name[:20]
	}
	return name
}
