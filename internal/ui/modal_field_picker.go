package ui

import (
	"happydash/internal/dataset"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// FieldPickerModal lets the user choose a scatterplot axis field by name.
type FieldPickerModal struct {
	list list.Model
	axis string
}

type fieldItem dataset.Field

func (f fieldItem) FilterValue() string { return dataset.Field(f).Label() }
func (f fieldItem) Title() string       { return dataset.Field(f).Label() }
func (f fieldItem) Description() string { return f.Key }

// Ensure FieldPickerModal implements View.
var _ View = (*FieldPickerModal)(nil)

// NewFieldPickerModal creates a picker for axis ("x" or "y") with current
// preselected.
func NewFieldPickerModal(axis, current string) *FieldPickerModal {
	fields := dataset.Fields()
	items := make([]list.Item, len(fields))
	selected := 0
	for i, f := range fields {
		items[i] = fieldItem(f)
		if f.Key == current {
			selected = i
		}
	}
	l := list.New(items, NewCompactListDelegate(), 44, 14)
	l.Title = "Choose " + axis + " field"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	l.Select(selected)
	return &FieldPickerModal{list: l, axis: axis}
}

// Init implements View.
func (m *FieldPickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *FieldPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, msgCmd(DismissModalMsg{})
		case "enter":
			if sel, ok := m.list.SelectedItem().(fieldItem); ok {
				return m, msgCmd(FieldChosenMsg{Axis: m.axis, Field: sel.Key})
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *FieldPickerModal) View() string {
	return Styles.Modal.Render(m.list.View() + "\n" + Styles.Hint.Render("Enter: select  /: filter  Esc: cancel"))
}
