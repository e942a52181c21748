package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerMode int

const (
	pickFiles pickerMode = iota
	pickDirectory
)

type clearErrorMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// PickerModel browses the filesystem. In file mode, enter toggles a file in
// the selection and s confirms it, keeping the order files were picked in.
// In directory mode, s chooses the directory being shown.
type PickerModel struct {
	mode       pickerMode
	title      string
	crumbs     string
	filepicker filepicker.Model
	styles     Styles

	selected []string
	dir      string
	err      error
	canceled bool
	done     bool
}

func newPicker(mode pickerMode, title, crumbs, startDir string, exts []string, styles Styles) PickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = exts
	fp.CurrentDirectory = startDir
	if fp.CurrentDirectory == "" {
		if hd, err := os.UserHomeDir(); err == nil {
			fp.CurrentDirectory = hd
		} else {
			fp.CurrentDirectory = "."
		}
	}
	fp.ShowHidden = false
	fp.AutoHeight = true
	fp.DirAllowed = false
	fp.FileAllowed = mode == pickFiles

	return PickerModel{mode: mode, title: title, crumbs: crumbs, filepicker: fp, styles: styles}
}

// NewFilePicker builds a multi-file picker limited to exts.
func NewFilePicker(title, crumbs, startDir string, exts []string, styles Styles) PickerModel {
	return newPicker(pickFiles, title, crumbs, startDir, exts, styles)
}

// NewDirPicker builds a directory picker.
func NewDirPicker(title, crumbs, startDir string, styles Styles) PickerModel {
	return newPicker(pickDirectory, title, crumbs, startDir, nil, styles)
}

// Selected returns the picked files in pick order.
func (m PickerModel) Selected() []string { return append([]string(nil), m.selected...) }

// Dir returns the chosen directory.
func (m PickerModel) Dir() string { return m.dir }

// Canceled reports whether the user backed out.
func (m PickerModel) Canceled() bool { return m.canceled }

func (m PickerModel) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		case "s":
			if m.mode == pickDirectory {
				m.dir = m.filepicker.CurrentDirectory
			}
			m.done = true
			return m, tea.Quit
		}
	case clearErrorMsg:
		m.err = nil
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.selected = toggle(m.selected, path)
	}
	if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
		m.err = errors.New(filepath.Base(path) + " is not a supported video.")
		return m, tea.Batch(cmd, clearErrorAfter(2*time.Second))
	}

	return m, cmd
}

// toggle adds path to sel, or removes it when already present.
func toggle(sel []string, path string) []string {
	if i := slices.Index(sel, path); i >= 0 {
		return slices.Delete(sel, i, i+1)
	}
	return append(sel, path)
}

func (m PickerModel) View() string {
	if m.canceled || m.done {
		return ""
	}
	var s strings.Builder
	s.WriteString("\n  " + m.crumbs + "\n\n")
	s.WriteString(m.styles.Title.Render(m.title) + "\n  ")
	switch {
	case m.err != nil:
		s.WriteString(m.styles.Error.Render(m.err.Error()))
	case m.mode == pickDirectory:
		s.WriteString("Current: " + m.styles.Selected.Render(m.filepicker.CurrentDirectory))
	case len(m.selected) == 0:
		s.WriteString("No files selected")
	default:
		names := make([]string, len(m.selected))
		for i, p := range m.selected {
			names[i] = fmt.Sprintf("%d. %s", i+1, filepath.Base(p))
		}
		s.WriteString("Selected: " + m.styles.Selected.Render(strings.Join(names, ", ")))
	}
	s.WriteString("\n\n" + m.filepicker.View() + "\n")
	if m.mode == pickDirectory {
		s.WriteString(m.styles.Help.Render("enter open • h back • s choose this folder • q cancel") + "\n")
	} else {
		s.WriteString(m.styles.Help.Render("enter toggle • h back • s done • q cancel") + "\n")
	}
	return s.String()
}

func runPicker(m PickerModel) (PickerModel, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return PickerModel{}, err
	}
	if fm, ok := final.(PickerModel); ok {
		return fm, nil
	}
	return PickerModel{}, fmt.Errorf("unexpected final model type")
}

// FileSelector picks concat inputs interactively.
type FileSelector struct {
	StartDir   string
	Extensions []string
	Crumbs     *Breadcrumb
}

// Select shows the multi-file picker. An empty result means the user cancelled.
func (f FileSelector) Select(title string) ([]string, error) {
	crumbs := ""
	if f.Crumbs != nil {
		crumbs = f.Crumbs.Render(DefaultStyles)
	}
	m, err := runPicker(NewFilePicker(title, crumbs, f.StartDir, f.Extensions, DefaultStyles))
	if err != nil {
		return nil, err
	}
	if m.Canceled() {
		return nil, nil
	}
	return m.Selected(), nil
}

// SelectDirectory shows the directory picker and returns "" when cancelled.
func SelectDirectory(title, startDir string, crumbs *Breadcrumb) (string, error) {
	m, err := runPicker(NewDirPicker(title, crumbs.Render(DefaultStyles), startDir, DefaultStyles))
	if err != nil {
		return "", err
	}
	if m.Canceled() {
		return "", nil
	}
	return m.Dir(), nil
}
