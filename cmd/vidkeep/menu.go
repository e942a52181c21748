package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/vidkeep"
	"github.com/five82/vidkeep/internal/tui"
	"github.com/five82/vidkeep/internal/util"
)

// prompter is the interactive surface the menu drives.
type prompter interface {
	Choose(title string, crumbs *tui.Breadcrumb, options []tui.Option) (string, error)
	Confirm(question string, crumbs *tui.Breadcrumb) (bool, error)
	SelectDirectory(title, startDir string, crumbs *tui.Breadcrumb) (string, error)
	SelectFiles(title, startDir string, exts []string, crumbs *tui.Breadcrumb) vidkeep.Selector
	Pause()
}

// terminalPrompter shows bubbletea screens.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (terminalPrompter) Choose(title string, crumbs *tui.Breadcrumb, options []tui.Option) (string, error) {
	return tui.Choose(title, crumbs, options)
}

func (terminalPrompter) Confirm(question string, crumbs *tui.Breadcrumb) (bool, error) {
	return tui.Confirm(question, crumbs)
}

func (terminalPrompter) SelectDirectory(title, startDir string, crumbs *tui.Breadcrumb) (string, error) {
	return tui.SelectDirectory(title, startDir, crumbs)
}

func (terminalPrompter) SelectFiles(_, startDir string, exts []string, crumbs *tui.Breadcrumb) vidkeep.Selector {
	return tui.FileSelector{StartDir: startDir, Extensions: exts, Crumbs: crumbs}
}

func (p terminalPrompter) Pause() {
	fmt.Fprint(p.out, "\nPress Enter to return to the menu...")
	_, _ = p.in.ReadString('\n')
}

// menu is the interactive controller. It owns the breadcrumb trail; every
// screen pushes its label on entry and pops it on the way out.
type menu struct {
	s      *session
	crumbs *tui.Breadcrumb
	ui     prompter
	out    io.Writer

	concat   func(req vidkeep.ConcatRequest, opts ...vidkeep.Option) error
	transfer func(req vidkeep.TransferRequest) error
	organize func(dir string) error
}

func newMenu(s *session, ui prompter, out io.Writer) *menu {
	return &menu{
		s:      s,
		crumbs: tui.NewBreadcrumb(tui.RootCrumb),
		ui:     ui,
		out:    out,
		concat: func(req vidkeep.ConcatRequest, opts ...vidkeep.Option) error {
			return concatWith(s, req, opts...)
		},
		transfer: func(req vidkeep.TransferRequest) error { return transferWith(s, req) },
		organize: func(dir string) error { return organizeWith(s, dir) },
	}
}

func runMenu(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	var ca commonArgs
	ca.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ca)
	if err != nil {
		return err
	}
	defer s.close()

	ui := terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	return newMenu(s, ui, os.Stdout).run()
}

var mainOptions = []tui.Option{
	{ID: "concat", Label: "Concatenate videos", Desc: "Join clips into one file"},
	{ID: "transfer", Label: "Transfer videos", Desc: "Move videos to the output directory"},
	{ID: "organize", Label: "Organize videos", Desc: "Sort the output directory by date"},
	{ID: "settings", Label: "Settings", Desc: "Input and output directories"},
	{ID: "exit", Label: "Exit"},
}

// run loops on the main menu until the user exits. A failed action is
// reported and the menu is shown again.
func (m *menu) run() error {
	for {
		choice, err := m.ui.Choose("Available commands", m.crumbs, mainOptions)
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "concat":
			actionErr = m.concatMenu()
		case "transfer":
			actionErr = m.transferMenu()
		case "organize":
			actionErr = m.organizeMenu()
		case "settings":
			actionErr = m.settingsMenu()
		case "exit", "":
			m.s.logger.Info("Exiting the application")
			return nil
		}
		if actionErr != nil {
			m.s.logger.Error("Menu action %s failed: %v", choice, actionErr)
			printError(m.out, actionErr)
			m.ui.Pause()
		}
	}
}

// requireDir returns the saved directory when it exists. Otherwise the user
// is told to fix it in settings and "" is returned.
func (m *menu) requireDir(dir, kind string) string {
	if dir == "" || !util.IsDirectory(dir) {
		fmt.Fprintf(m.out, "No valid %s directory set. Choose Settings to set the %s directory.\n", kind, kind)
		m.ui.Pause()
		return ""
	}
	return dir
}

func (m *menu) concatMenu() error {
	defer m.crumbs.Enter("Concatenate Videos")()

	input := m.requireDir(m.s.cfg.InputDir, "input")
	if input == "" {
		return nil
	}
	output := m.requireDir(m.s.cfg.OutputDir, "output")
	if output == "" {
		return nil
	}

	choice, err := m.ui.Choose("Select an option", m.crumbs, []tui.Option{
		{ID: "pick", Label: "Select specific video files"},
		{ID: "auto", Label: "Automatically append all video files"},
		{ID: "back", Label: "Back to main menu"},
	})
	if err != nil {
		return err
	}

	switch choice {
	case "pick":
		defer m.crumbs.Enter("Select Specific Files")()
		sel := m.ui.SelectFiles("Select videos to concatenate", input, m.s.cfg.ConcatExtensions, m.crumbs)
		return m.finish(m.concat(vidkeep.ConcatRequest{InputDir: input, OutputDir: output, Pick: true}, vidkeep.WithSelector(sel)))
	case "auto":
		return m.autoAppendMenu(input, output)
	}
	return nil
}

func (m *menu) autoAppendMenu(input, output string) error {
	choice, err := m.ui.Choose("Select an option", m.crumbs, []tui.Option{
		{ID: "browse", Label: "Select a directory"},
		{ID: "input", Label: "Use the input directory", Desc: input},
		{ID: "output", Label: "Use the output directory", Desc: output},
		{ID: "back", Label: "Back to previous menu"},
	})
	if err != nil {
		return err
	}

	switch choice {
	case "browse":
		defer m.crumbs.Enter("Select Directory")()
		dir, err := m.ui.SelectDirectory("Select directory containing video files", input, m.crumbs)
		if err != nil {
			return err
		}
		if dir == "" {
			fmt.Fprintln(m.out, "No directory selected.")
			return nil
		}
		return m.finish(m.concat(vidkeep.ConcatRequest{InputDir: dir, OutputDir: output}))
	case "input":
		defer m.crumbs.Enter("Use Input Directory")()
		return m.finish(m.concat(vidkeep.ConcatRequest{InputDir: input, OutputDir: output}))
	case "output":
		defer m.crumbs.Enter("Use Output Directory")()
		return m.finish(m.concat(vidkeep.ConcatRequest{InputDir: output, OutputDir: output}))
	}
	return nil
}

// finish shows err unless it was already reported, then pauses so the
// result stays on screen. The menu keeps running either way.
func (m *menu) finish(err error) error {
	if err != nil {
		m.s.logger.Warn("Operation failed: %v", err)
		printError(m.out, err)
	}
	m.ui.Pause()
	return nil
}

func (m *menu) transferMenu() error {
	defer m.crumbs.Enter("Transfer Videos")()

	input, err := m.ensureDir(&m.s.cfg.InputDir, "input")
	if err != nil || input == "" {
		return err
	}
	output, err := m.ensureDir(&m.s.cfg.OutputDir, "output")
	if err != nil || output == "" {
		return err
	}

	del, err := m.ui.Confirm("Delete the videos from the source directory after transferring them?", m.crumbs)
	if err != nil {
		return err
	}
	org, err := m.ui.Confirm("Organize the destination by date?", m.crumbs)
	if err != nil {
		return err
	}

	return m.finish(m.transfer(vidkeep.TransferRequest{
		SourceDir:       input,
		DestDir:         output,
		DeleteOriginals: del,
		OrganizeByDate:  org,
	}))
}

// ensureDir returns *dir when it exists, or asks for a directory and saves it.
func (m *menu) ensureDir(dir *string, kind string) (string, error) {
	if *dir != "" && util.IsDirectory(*dir) {
		return *dir, nil
	}
	defer m.crumbs.Enter(fmt.Sprintf("Select %s Directory", titleCase(kind)))()
	picked, err := m.ui.SelectDirectory(fmt.Sprintf("Select %s directory", kind), *dir, m.crumbs)
	if err != nil {
		return "", err
	}
	if picked == "" {
		fmt.Fprintf(m.out, "No %s directory selected.\n", kind)
		return "", nil
	}
	*dir = picked
	if err := m.s.saveConfig(); err != nil {
		return "", err
	}
	fmt.Fprintf(m.out, "%s directory set to: %s\n", titleCase(kind), picked)
	return picked, nil
}

func (m *menu) organizeMenu() error {
	defer m.crumbs.Enter("Organize Videos")()

	output := m.requireDir(m.s.cfg.OutputDir, "output")
	if output == "" {
		return nil
	}
	return m.finish(m.organize(output))
}

func (m *menu) settingsMenu() error {
	defer m.crumbs.Enter("Settings")()

	for {
		choice, err := m.ui.Choose("Settings", m.crumbs, []tui.Option{
			{ID: "input", Label: "Change input directory", Desc: m.s.cfg.InputDir},
			{ID: "output", Label: "Change output directory", Desc: m.s.cfg.OutputDir},
			{ID: "reveal", Label: "Open output folder after concat", Desc: fmt.Sprintf("%v", m.s.cfg.OpenOutputDir)},
			{ID: "back", Label: "Back to main menu"},
		})
		if err != nil {
			return err
		}

		switch choice {
		case "input":
			if err := m.changeDir(&m.s.cfg.InputDir, "input"); err != nil {
				return err
			}
		case "output":
			if err := m.changeDir(&m.s.cfg.OutputDir, "output"); err != nil {
				return err
			}
		case "reveal":
			m.s.cfg.OpenOutputDir = !m.s.cfg.OpenOutputDir
			if err := m.s.saveConfig(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (m *menu) changeDir(dir *string, kind string) error {
	defer m.crumbs.Enter(fmt.Sprintf("Change %s Directory", titleCase(kind)))()

	picked, err := m.ui.SelectDirectory(fmt.Sprintf("Select new %s directory", kind), *dir, m.crumbs)
	if err != nil {
		return err
	}
	if picked == "" {
		fmt.Fprintf(m.out, "No new %s directory selected. Using the current one.\n", kind)
		return nil
	}
	*dir = picked
	if err := m.s.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s directory set to: %s\n", titleCase(kind), picked)
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
