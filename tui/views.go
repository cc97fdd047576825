package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/models"
)

var (
	indigo = lipgloss.Color("#4F46E5")
	gray   = lipgloss.Color("#6B7280")
	red    = lipgloss.Color("#DC2626")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(indigo)
	helpStyle     = lipgloss.NewStyle().Foreground(gray)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(16)
	categoryStyle = lipgloss.NewStyle().Foreground(indigo).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gray).
			Padding(0, 2).
			Width(40)
	selectedCardStyle = cardStyle.BorderForeground(indigo)
	wordStyle         = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wordcards"))
	b.WriteString("\n\n")

	if m.ctrl.Mode() == controller.Editing {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.listView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if categories := m.ctrl.Categories(); len(categories) > 0 {
		current := "All Categories"
		if m.categoryIdx >= 0 && m.categoryIdx < len(categories) {
			current = categories[m.categoryIdx]
		}
		b.WriteString(helpStyle.Render("Category: ") + categoryStyle.Render(current))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cards := m.ctrl.Visible()
	switch {
	case len(m.ctrl.Snapshot()) == 0:
		b.WriteString("No flashcards yet. Press n to create your first one!\n")
	case len(cards) == 0:
		b.WriteString("No flashcards match your search criteria.\n")
	default:
		for _, i := range m.window(len(cards)) {
			b.WriteString(m.cardView(cards[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.confirmID != "" {
		b.WriteString(errorStyle.Render("Are you sure you want to delete this flashcard? (y/n)"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • space flip • n new • e edit • d delete • / search • c category • q quit"))
	}
	return b.String()
}

// window returns the card indexes that fit on screen around the cursor.
func (m Model) window(n int) []int {
	// a rendered card takes about five lines
	visible := n
	if m.height > 0 {
		visible = max(1, (m.height-8)/5)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(n, start+visible)

	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return idx
}

func (m Model) cardView(card models.Flashcard, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}

	var lines []string
	if m.flipped[card.ID] {
		lines = append(lines, wordStyle.Render(card.Translation))
		lines = append(lines, helpStyle.Render(card.Word))
	} else {
		lines = append(lines, wordStyle.Render(card.Word))
		if card.Transcription != "" {
			lines = append(lines, helpStyle.Render(card.Transcription))
		}
	}
	if card.Category != "" {
		lines = append(lines, categoryStyle.Render(card.Category))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) formView() string {
	var b strings.Builder

	title := "Create New Flashcard"
	if _, ok := m.ctrl.EditingCard(); ok {
		title = "Edit Flashcard"
	}
	b.WriteString(wordStyle.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"English Word", "Transcription", "Translation", "Category", "Image URL"}
	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
		if msg := m.fieldErrs[fieldKeys[i]]; msg != "" {
			b.WriteString(errorStyle.Render(fmt.Sprintf("%16s%s", "", msg)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field • enter save • esc cancel"))
	return b.String()
}
