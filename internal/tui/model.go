// Package tui renders the todo list as an interactive terminal UI on top of
// the application store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddItem
	modeEditItem
	modeConfirmDelete
	modeItemInfo
)

// Model represents the terminal UI state over one todo store.
type Model struct {
	store *app.Store
	ctx   context.Context

	ready  bool
	width  int
	height int

	status string
	title  string

	help help.Model
	keys keyMap

	showStats     bool
	confirmDelete bool

	cursor int
	mode   inputMode
	input  textinput.Model

	editingID       string
	pendingDeleteID string
	infoItemID      string

	markdown markdownRenderer
}

// refreshedMsg signals one completed store refresh cycle.
type refreshedMsg struct {
	err error
}

// actionMsg carries message data through update handling.
type actionMsg struct {
	err    error
	status string
}

// NewModel constructs a new value for this package.
func NewModel(store *app.Store, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "what needs doing?"
	input.CharLimit = 240

	m := Model{
		store:         store,
		ctx:           context.Background(),
		status:        "loading...",
		title:         "syssla",
		help:          h,
		keys:          newKeyMap(DefaultKeyBindings()),
		showStats:     true,
		confirmDelete: true,
		input:         input,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.refreshData
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
		} else if m.status == "" || m.status == "loading..." || m.status == "refreshing..." {
			m.status = "ready"
		}
		m.clampCursor()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else if msg.status != "" {
			m.status = msg.status
		}
		m.clampCursor()
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	default:
		return m, nil
	}
}

// refreshData runs one store refresh and reports the terminal phase.
func (m Model) refreshData() tea.Msg {
	return refreshedMsg{err: m.store.Refresh(m.ctx)}
}

// createItem submits one new todo entry through the store.
func (m Model) createItem(text string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.store.Create(m.ctx, text)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("added %q", truncate(item.Text, 28))}
	}
}

// updateItem submits one changed todo entry through the store.
func (m Model) updateItem(item domain.Item, status string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.store.Update(m.ctx, item); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: status}
	}
}

// deleteItem removes one todo entry through the store.
func (m Model) deleteItem(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Remove(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "deleted"}
	}
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		if m.help.ShowAll {
			m.status = "help"
		} else {
			m.status = "ready"
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if items := m.store.FilteredItems(); m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.status = "refreshing..."
		return m, m.refreshData
	case key.Matches(msg, m.keys.cycleFilter):
		m.store.SetFilter(m.store.Filter().Next())
		m.cursor = 0
		m.status = "filter: " + string(m.store.Filter())
		return m, nil
	case key.Matches(msg, m.keys.addItem):
		m.help.ShowAll = false
		m.mode = modeAddItem
		m.input.Placeholder = "what needs doing?"
		m.input.SetValue("")
		m.status = "new todo"
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.editItem):
		item, ok := m.selectedItem()
		if !ok {
			m.status = "no todo selected"
			return m, nil
		}
		m.mode = modeEditItem
		m.editingID = item.ID
		m.input.Placeholder = ""
		m.input.SetValue(item.Text)
		m.status = "edit todo"
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.itemInfo):
		item, ok := m.selectedItem()
		if !ok {
			m.status = "no todo selected"
			return m, nil
		}
		m.mode = modeItemInfo
		m.infoItemID = item.ID
		m.status = "todo info"
		return m, nil
	case key.Matches(msg, m.keys.toggleDone):
		item, ok := m.selectedItem()
		if !ok {
			m.status = "no todo selected"
			return m, nil
		}
		item.Toggle()
		status := "marked done"
		if !item.IsCompleted {
			status = "marked not done"
		}
		return m, m.updateItem(item, status)
	case key.Matches(msg, m.keys.deleteItem):
		item, ok := m.selectedItem()
		if !ok {
			m.status = "no todo selected"
			return m, nil
		}
		if m.confirmDelete {
			m.mode = modeConfirmDelete
			m.pendingDeleteID = item.ID
			m.status = fmt.Sprintf("delete %q? y/n", truncate(item.Text, 28))
			return m, nil
		}
		return m, m.deleteItem(item.ID)
	case key.Matches(msg, m.keys.reorderUp):
		return m.reorderSelected(-1)
	case key.Matches(msg, m.keys.reorderDown):
		return m.reorderSelected(1)
	case msg.Code == tea.KeyEscape || msg.String() == "esc":
		if m.help.ShowAll {
			m.help.ShowAll = false
			m.status = "ready"
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if msg.Code == tea.KeyEscape {
		keyStr = "esc"
	}

	switch m.mode {
	case modeItemInfo:
		switch keyStr {
		case "esc", "i", "q", "enter":
			m.mode = modeNone
			m.infoItemID = ""
			m.status = "ready"
		}
		return m, nil

	case modeConfirmDelete:
		switch keyStr {
		case "y", "enter":
			id := m.pendingDeleteID
			m.mode = modeNone
			m.pendingDeleteID = ""
			return m, m.deleteItem(id)
		case "n", "esc":
			m.mode = modeNone
			m.pendingDeleteID = ""
			m.status = "delete cancelled"
		}
		return m, nil

	case modeAddItem:
		switch keyStr {
		case "esc":
			m.mode = modeNone
			m.input.Blur()
			m.input.SetValue("")
			m.status = "ready"
			return m, nil
		case "enter":
			text := m.input.Value()
			// The input resets before the store reports back, so a failed
			// submission does not restore the typed text.
			m.mode = modeNone
			m.input.Blur()
			m.input.SetValue("")
			m.status = "adding..."
			return m, m.createItem(text)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeEditItem:
		switch keyStr {
		case "esc":
			m.mode = modeNone
			m.editingID = ""
			m.input.Blur()
			m.input.SetValue("")
			m.status = "ready"
			return m, nil
		case "enter":
			id := m.editingID
			text := m.input.Value()
			m.mode = modeNone
			m.editingID = ""
			m.input.Blur()
			m.input.SetValue("")
			item, ok := m.store.Get(id)
			if !ok {
				m.status = "todo vanished"
				return m, nil
			}
			item.Rename(text)
			return m, m.updateItem(item, "renamed")
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// reorderSelected moves the selected todo one visible slot in the given direction.
func (m Model) reorderSelected(delta int) (tea.Model, tea.Cmd) {
	filtered := m.store.FilteredItems()
	if len(filtered) == 0 {
		m.status = "no todo selected"
		return m, nil
	}
	target := m.cursor + delta
	if target < 0 || target >= len(filtered) {
		return m, nil
	}

	all := m.store.Items()
	from := indexOf(all, filtered[m.cursor].ID)
	to := indexOf(all, filtered[target].ID)
	if from < 0 || to < 0 {
		return m, nil
	}
	if err := m.store.Move([]int{from}, to); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.cursor = target
	m.status = "moved"
	return m, nil
}

// selectedItem resolves the cursor against the currently visible items.
func (m Model) selectedItem() (domain.Item, bool) {
	items := m.store.FilteredItems()
	if len(items) == 0 {
		return domain.Item{}, false
	}
	return items[clamp(m.cursor, 0, len(items)-1)], true
}

func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, 0, len(m.store.FilteredItems())-1)
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent composes the full frame as plain styled text.
func (m Model) renderContent() string {
	if !m.ready {
		return "loading..."
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cursorStyle := lipgloss.NewStyle().Foreground(accent)
	doneStyle := lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	var body string
	if m.mode == modeItemInfo {
		body = m.renderItemInfo(titleStyle, statusStyle)
	} else {
		body = m.renderList(titleStyle, cursorStyle, doneStyle, statusStyle)
	}

	sections := []string{body}
	if m.mode == modeAddItem || m.mode == modeEditItem {
		sections = append(sections, "", m.input.View())
	}
	if strings.TrimSpace(m.status) != "" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.SetWidth(maxInt(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(maxInt(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, maxInt(0, m.height-helpHeight))
	}
	return content + "\n" + helpLine
}

// renderList renders the header, visible todos, and the stats line.
func (m Model) renderList(titleStyle, cursorStyle, doneStyle, statusStyle lipgloss.Style) string {
	filter := m.store.Filter()
	header := titleStyle.Render(m.title) + "  " + statusStyle.Render("["+string(filter)+"]")
	if m.store.Phase() == app.PhaseLoading {
		header += "  " + statusStyle.Render("syncing…")
	}

	lines := []string{header, ""}
	items := m.store.FilteredItems()
	if len(items) == 0 {
		lines = append(lines, statusStyle.Render("nothing here — press "+m.keys.addItem.Help().Key+" to add a todo"))
	}
	for idx, item := range items {
		marker := "  "
		if idx == m.cursor {
			marker = cursorStyle.Render("› ")
		}
		checkbox := "[ ] "
		text := item.Text
		if item.IsCompleted {
			checkbox = "[x] "
			text = doneStyle.Render(text)
		}
		lines = append(lines, marker+checkbox+text)
	}

	if m.showStats {
		stats := m.store.Stats()
		line := fmt.Sprintf("%d/%d done (%.0f%%)", stats.TotalCompleted, stats.Total, stats.PercentCompleted*100)
		if filter != domain.FilterAll {
			line += fmt.Sprintf(" • showing %d of %d", len(items), stats.Total)
		}
		lines = append(lines, "", statusStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderItemInfo renders the markdown detail view for one todo.
func (m Model) renderItemInfo(titleStyle, statusStyle lipgloss.Style) string {
	item, ok := m.store.Get(m.infoItemID)
	if !ok {
		return statusStyle.Render("todo unavailable")
	}
	state := "not done"
	if item.IsCompleted {
		state = "done"
	}
	lines := []string{
		titleStyle.Render("todo info"),
		"",
		m.markdown.render(item.Text, maxInt(0, m.width-4)),
		"",
		statusStyle.Render("id: " + item.ID),
		statusStyle.Render("state: " + state),
		"",
		statusStyle.Render("esc to go back"),
	}
	return strings.Join(lines, "\n")
}

// indexOf locates one item id inside a full snapshot.
func indexOf(items []domain.Item, id string) int {
	for idx, item := range items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of the provided values.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
