package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/six78/gtrsnap/internal/config"
	"github.com/six78/gtrsnap/pkg/protocol"
)

// Renderer draws a human readable summary of a snapshot.
type Renderer struct {
	renderer *lipgloss.Renderer

	headerStyle          lipgloss.Style
	foregroundShadeStyle lipgloss.Style
	hiddenCardStyle      lipgloss.Style
	winnerStyle          lipgloss.Style
	activeStyle          lipgloss.Style
	borderStyle          lipgloss.Style
}

// New creates a renderer for w. With noColor set, output carries no
// escape sequences at all.
func New(w io.Writer, noColor bool) *Renderer {
	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		renderer:             renderer,
		headerStyle:          renderer.NewStyle().Bold(true),
		foregroundShadeStyle: renderer.NewStyle().Foreground(config.ForegroundShadeColor),
		hiddenCardStyle:      renderer.NewStyle().Foreground(config.HiddenCardColor),
		winnerStyle:          renderer.NewStyle().Bold(true).Foreground(config.WinnerColor),
		activeStyle:          renderer.NewStyle().Foreground(config.UserColor),
		borderStyle:          renderer.NewStyle().Foreground(config.ForegroundShadeColor),
	}
}

func (r *Renderer) Render(s *protocol.Snapshot) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.renderGame(s),
		"",
		r.renderTable(s),
		r.renderPlayers(s),
		"",
		r.renderStack(s),
	)
}

func (r *Renderer) renderGame(s *protocol.Snapshot) string {
	title := fmt.Sprintf("Game %d", s.GameID)
	info := fmt.Sprintf("turn %d, action %d, host %s, %d log entries",
		s.TurnNumber, s.ActionNumber, protocol.TrimName(s.Host), s.LogLength)

	roleLed := "no role led"
	if s.RoleLed != protocol.RoleNone {
		roleLed = "role led: " + s.RoleLed.String()
	}

	lines := []string{
		r.headerStyle.Render(title) + " " + r.foregroundShadeStyle.Render(info),
		fmt.Sprintf("  %s, expecting %s", roleLed, s.ExpectedAction),
		fmt.Sprintf("  leader: %s, active: %s", r.playerName(s, s.LeaderIndex), r.playerName(s, s.ActivePlayerIndex)),
	}

	if s.LegionaryPlayerIndex != nil {
		lines = append(lines, fmt.Sprintf("  legionary demand by %s, %d pending",
			r.playerName(s, *s.LegionaryPlayerIndex), s.LegionaryCount))
	}

	if s.RoleLed != protocol.RoleNone {
		if pending := s.PendingRoleActions(s.ActivePlayerIndex, s.RoleLed); pending > 0 {
			lines = append(lines, fmt.Sprintf("  %d %s actions left for the active player", pending, s.RoleLed))
		}
	}

	if len(s.Winners) > 0 {
		names := make([]string, 0, len(s.Winners))
		for i := range s.Players {
			if s.IsWinner(i) {
				names = append(names, protocol.TrimName(s.Players[i].Name))
			}
		}
		lines = append(lines, "  "+r.winnerStyle.Render("winner: "+strings.Join(names, ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) renderTable(s *protocol.Snapshot) string {
	outOfTown := renderSites(s.OutOfTownSites)
	if !s.OutOfTownAllowed {
		outOfTown += r.foregroundShadeStyle.Render(" (not allowed)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		r.headerStyle.Render("Table"),
		"  in town:     "+renderSites(s.InTownSites),
		"  out of town: "+outOfTown,
		"  jacks:       "+r.renderZone(s.Jacks),
		"  library:     "+r.renderZone(s.Library),
		"  pool:        "+r.renderZone(s.Pool),
	)
}

func (r *Renderer) renderPlayers(s *protocol.Snapshot) string {
	headers := []string{"", "player", "hand", "camp", "stockpile", "clientele", "vault", "influence", "buildings"}
	rows := make([][]string, 0, len(s.Players))
	for i, p := range s.Players {
		marker := ""
		if i == s.ActivePlayerIndex {
			marker = ">"
		}
		rows = append(rows, []string{
			marker,
			protocol.TrimName(p.Name),
			r.renderZone(p.Hand),
			r.renderZone(p.Camp),
			r.renderZone(p.Stockpile),
			r.renderZone(p.Clientele),
			r.renderZone(p.Vault),
			renderSites(p.Influence),
			r.renderBuildings(p.Buildings),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := r.renderer.NewStyle().Padding(0, 1)
			switch {
			case row == 0:
				return style.Inherit(r.headerStyle)
			case s.IsWinner(row - 1):
				return style.Inherit(r.winnerStyle)
			case row-1 == s.ActivePlayerIndex:
				return style.Inherit(r.activeStyle)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

func (r *Renderer) renderBuildings(buildings []protocol.Building) string {
	if len(buildings) == 0 {
		return "-"
	}
	lines := make([]string, 0, len(buildings))
	for _, b := range buildings {
		line := fmt.Sprintf("%s on %s [%s]", b.Foundation, b.Site, r.renderZone(b.Materials))
		if len(b.StairwayMaterials) > 0 {
			line += " +" + r.renderZone(b.StairwayMaterials)
		}
		if b.Complete {
			line += " done"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStack(s *protocol.Snapshot) string {
	lines := []string{r.headerStyle.Render("Stack")}
	for i, frame := range s.Stack {
		lines = append(lines, r.renderFrame(s, frame, strings.Repeat("  ", i+1)))
	}
	if s.CurrentFrame == nil {
		lines = append(lines, r.foregroundShadeStyle.Render("  no current frame"))
	} else {
		lines = append(lines, "> "+r.renderFrame(s, *s.CurrentFrame, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) renderFrame(s *protocol.Snapshot, frame protocol.Frame, indent string) string {
	args := make([]string, 0, len(frame.Args))
	for _, arg := range frame.Args {
		if player := s.ArgPlayer(arg); player != nil {
			args = append(args, protocol.TrimName(player.Name))
			continue
		}
		args = append(args, arg.String())
	}
	text := fmt.Sprintf("%s%s(%s)", indent, frame.Function, strings.Join(args, ", "))
	if frame.Executed {
		return r.foregroundShadeStyle.Render(text + " executed")
	}
	return text
}

func (r *Renderer) renderZone(zone []protocol.Card) string {
	if len(zone) == 0 {
		return "-"
	}
	if protocol.Zone(zone).Hidden() {
		return r.hiddenCardStyle.Render(strconv.Itoa(len(zone)) + " hidden")
	}
	cards := make([]string, len(zone))
	for i, card := range zone {
		if card.Hidden() {
			cards[i] = r.hiddenCardStyle.Render("?")
			continue
		}
		cards[i] = card.String()
	}
	return strings.Join(cards, " ")
}

func (r *Renderer) playerName(s *protocol.Snapshot, index int) string {
	if index < 0 || index >= len(s.Players) {
		return r.foregroundShadeStyle.Render(fmt.Sprintf("#%d", index))
	}
	return protocol.TrimName(s.Players[index].Name)
}

// renderSites prints material counts, e.g. "Marble 1, Stone 2".
func renderSites(materials []protocol.Material) string {
	if len(materials) == 0 {
		return "-"
	}
	counts := make(map[protocol.Material]int, len(protocol.Materials))
	for _, m := range materials {
		counts[m]++
	}
	parts := make([]string, 0, len(protocol.Materials))
	for _, m := range protocol.Materials {
		if counts[m] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", m, counts[m]))
		}
	}
	return strings.Join(parts, ", ")
}
