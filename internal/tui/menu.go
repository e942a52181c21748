package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Option is one menu entry.
type Option struct {
	ID    string
	Label string
	Desc  string
}

func (o Option) Title() string       { return o.Label }
func (o Option) Description() string { return o.Desc }
func (o Option) FilterValue() string { return o.Label }

const (
	menuWidth  = 60
	menuHeight = 16
)

// MenuModel is a single-choice list under a breadcrumb trail.
type MenuModel struct {
	crumbs string
	list   list.Model
	styles Styles

	chosen   string
	canceled bool
}

// NewMenuModel builds a menu. crumbs is the rendered breadcrumb trail.
func NewMenuModel(title, crumbs string, options []Option, styles Styles) MenuModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = o
	}

	delegate := list.NewDefaultDelegate()
	ls := list.New(items, delegate, menuWidth, menuHeight)
	ls.Title = title
	ls.SetShowStatusBar(false)
	ls.SetFilteringEnabled(false)
	ls.SetShowHelp(false)
	ls.Select(0)

	return MenuModel{crumbs: crumbs, list: ls, styles: styles}
}

// Chosen returns the ID of the picked option, or "" when the menu was left.
func (m MenuModel) Chosen() string { return m.chosen }

// Canceled reports whether the user backed out.
func (m MenuModel) Canceled() bool { return m.canceled }

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(min(msg.Width, menuWidth), min(max(msg.Height-2, 1), menuHeight))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if o, ok := m.list.SelectedItem().(Option); ok {
				m.chosen = o.ID
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
		// Number keys pick directly.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			idx := int(s[0] - '1')
			if idx < len(m.list.Items()) {
				m.chosen = m.list.Items()[idx].(Option).ID
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	var s strings.Builder
	s.WriteString("\n  " + m.crumbs + "\n\n")
	s.WriteString(m.list.View())
	s.WriteString("\n" + m.styles.Help.Render("enter select • 1-9 jump • esc back") + "\n")
	return s.String()
}

// Choose shows a menu and returns the chosen option ID, or "" when the user
// backed out.
func Choose(title string, crumbs *Breadcrumb, options []Option) (string, error) {
	final, err := tea.NewProgram(NewMenuModel(title, crumbs.Render(DefaultStyles), options, DefaultStyles)).Run()
	if err != nil {
		return "", fmt.Errorf("menu: %w", err)
	}
	m, ok := final.(MenuModel)
	if !ok {
		return "", fmt.Errorf("unexpected final model type")
	}
	return m.Chosen(), nil
}

// Confirm asks a yes/no question. Backing out counts as no.
func Confirm(question string, crumbs *Breadcrumb) (bool, error) {
	id, err := Choose(question, crumbs, []Option{
		{ID: "yes", Label: "Yes"},
		{ID: "no", Label: "No"},
	})
	return id == "yes", err
}
