// Package tui is a terminal front-end over the lifecycle controller.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/utils"
)

// Form inputs in display order.
const (
	fieldWord = iota
	fieldTranscription
	fieldTranslation
	fieldCategory
	fieldImage
	fieldCount
)

var fieldKeys = [fieldCount]string{"word", "transcription", "translation", "category", "imageUrl"}

type Model struct {
	ctx  context.Context
	ctrl *controller.Controller

	inputs    []textinput.Model
	focus     int
	fieldErrs map[string]string

	search    textinput.Model
	searching bool
	// index into the controller's categories, -1 for all
	categoryIdx int

	cursor    int
	flipped   map[string]bool
	confirmID string

	status string
	width  int
	height int
}

func New(ctx context.Context, ctrl *controller.Controller) Model {
	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		categoryIdx: -1,
		flipped:     make(map[string]bool),
	}

	placeholders := [fieldCount]string{
		"Enter English word",
		"e.g., /ˈtrænskrɪpʃən/",
		"Enter translation",
		"e.g., Verbs, Food, Business",
		"https://...",
	}
	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		m.inputs[i] = ti
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search cards..."
	m.search.Prompt = "/ "
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.ctrl.Mode() == controller.Editing:
			return m.updateForm(msg)
		case m.confirmID != "":
			return m.updateConfirm(msg), nil
		case m.searching:
			return m.updateSearch(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.ctrl.Visible()
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case " ":
		if card, ok := m.selected(cards); ok {
			m.flipped[card.ID] = !m.flipped[card.ID]
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "c":
		m.cycleCategory()
	case "n":
		m.ctrl.RequestCreate()
		return m, m.openForm(models.FlashcardFormData{})
	case "e":
		if card, ok := m.selected(cards); ok && m.ctrl.RequestEdit(card.ID) {
			return m, m.openForm(card.FormData())
		}
	case "d":
		if card, ok := m.selected(cards); ok {
			m.confirmID = card.ID
		}
	case "r":
		m.ctrl.Refresh(m.ctx)
	}
	m.clampCursor()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		deleted, err := m.ctrl.RequestDelete(m.ctx, m.confirmID)
		switch {
		case err != nil:
			m.status = "Delete failed: " + err.Error()
		case deleted:
			m.status = "Flashcard deleted"
		}
		delete(m.flipped, m.confirmID)
		m.confirmID = ""
		m.clampCursor()
	case "n", "N", "esc":
		m.confirmID = ""
	}
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.CancelForm()
		m.fieldErrs = nil
		return m, nil
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if key := fieldKeys[m.focus]; m.fieldErrs[key] != "" {
		delete(m.fieldErrs, key)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	data := m.formData()
	if errs := utils.Fields(data); len(errs) > 0 {
		m.fieldErrs = errs
		return m, nil
	}

	if err := m.ctrl.SubmitForm(m.ctx, data); err != nil {
		m.status = "Save failed: " + err.Error()
		return m, nil
	}

	m.fieldErrs = nil
	m.status = "Flashcard saved"
	m.cursor = 0
	return m, nil
}

func (m *Model) openForm(data models.FlashcardFormData) tea.Cmd {
	values := [fieldCount]string{data.Word, data.Transcription, data.Translation, data.Category, data.ImageURL}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	m.fieldErrs = nil
	return m.focusField(fieldWord)
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m Model) formData() models.FlashcardFormData {
	return models.FlashcardFormData{
		Word:          m.inputs[fieldWord].Value(),
		Transcription: m.inputs[fieldTranscription].Value(),
		Translation:   m.inputs[fieldTranslation].Value(),
		Category:      m.inputs[fieldCategory].Value(),
		ImageURL:      m.inputs[fieldImage].Value(),
	}
}

func (m *Model) cycleCategory() {
	categories := m.ctrl.Categories()
	m.categoryIdx++
	if m.categoryIdx >= len(categories) {
		m.categoryIdx = -1
	}

	category := ""
	if m.categoryIdx >= 0 {
		category = categories[m.categoryIdx]
	}
	m.ctrl.SetCategory(category)
	m.cursor = 0
}

func (m Model) selected(cards []models.Flashcard) (models.Flashcard, bool) {
	if m.cursor < 0 || m.cursor >= len(cards) {
		return models.Flashcard{}, false
	}
	return cards[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Run starts the full screen program.
func Run(ctx context.Context, ctrl *controller.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
