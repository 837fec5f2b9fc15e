package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LoadMode selects how the first dataset is produced.
type LoadMode string

const (
	LoadIngest  LoadMode = "ingest"
	LoadRestore LoadMode = "restore"
)

// LoadModeSelectedMsg is emitted once the startup form is submitted.
type LoadModeSelectedMsg struct {
	Mode LoadMode
}

const formWidth = 60

type StartupModel struct {
	CommonModel
	form *huh.Form
	mode LoadMode
}

// NewStartupModel builds the startup form. canRestore hides the restore option
// when no canonical store is configured.
func NewStartupModel(sourceDir string, def LoadMode, canRestore bool) *StartupModel {
	m := &StartupModel{mode: def}

	options := []huh.Option[LoadMode]{
		huh.NewOption("Ingest source directory ("+sourceDir+")", LoadIngest),
	}
	if canRestore {
		options = append(options, huh.NewOption("Restore canonical dataset", LoadRestore))
	} else {
		m.mode = LoadIngest
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[LoadMode]().
				Key("mode").
				Title("Load sales data").
				Options(options...).
				Value(&m.mode),
		),
	).WithWidth(formWidth).WithShowHelp(false)

	return m
}

func (m *StartupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *StartupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width, m.Height = size.Width, size.Height
		m.form = m.form.WithWidth(min(max(m.Width-4, 20), formWidth))
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		mode := m.mode
		return m, func() tea.Msg { return LoadModeSelectedMsg{Mode: mode} }
	case huh.StateAborted:
		return m, tea.Quit
	}

	return m, cmd
}

func (m *StartupModel) View() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}
