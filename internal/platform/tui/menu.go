package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceSingle
	ChoiceCoop
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Hint   string
	Choice MenuChoice
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")).
			Padding(0, 2)
	menuSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Italic(true)
	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("198")).
				Padding(0, 1)
	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	menuHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	menuRecordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// MenuModel is the title screen. It does not quit the program itself;
// the owner reads Chosen after each update.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highScore int
	keys      MenuKeyMap
	help      help.Model
	chosen    MenuChoice
}

// NewMenuModel creates a menu. The scores entry is listed only when run
// history is available.
func NewMenuModel(width, height, highScore int, withScores bool) MenuModel {
	items := []MenuItem{
		{Title: "Single Player", Hint: "arrows to move", Choice: ChoiceSingle},
		{Title: "Co-op", Hint: "P1 arrows, P2 A/D", Choice: ChoiceCoop},
	}
	if withScores {
		items = append(items, MenuItem{Title: "High Scores", Hint: "run history", Choice: ChoiceScores})
	}
	items = append(items, MenuItem{Title: "Quit", Choice: ChoiceQuit})

	h := help.New()
	h.Width = width

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		highScore: highScore,
		keys:      DefaultMenuKeyMap(),
		help:      h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.chosen = ChoiceQuit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = m.items[m.cursor].Choice
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(menuTitleStyle.Render("M A K E U P   R A I N"))
	b.WriteString("\n")
	b.WriteString(menuSubtitleStyle.Render("catch the makeup, dodge the cacti"))
	b.WriteString("\n\n")
	b.WriteString(menuRecordStyle.Render(fmt.Sprintf("High score %d", m.highScore)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := menuItemStyle.Render(item.Title)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
			if item.Hint != "" {
				line += " " + menuHintStyle.Render(item.Hint)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()))
}

// Chosen returns the picked entry, ChoiceNone while browsing.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
