package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/morsel/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/morsel/internal/app"
	"github.com/MrJamesThe3rd/morsel/internal/config"
	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/logger"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
)

type View int

const (
	ViewStartup   View = 0
	ViewLoading   View = 1
	ViewDashboard View = 2
)

type model struct {
	cfg        *config.Config
	datasetSvc *dataset.Service

	currentView View
	spinner     spinner.Model

	startupView   *view.StartupModel
	dashboardView view.DashboardModel

	// err aborts the program; main prints it after the TUI exits.
	err error
}

type loadedMsg struct {
	ds  *dataset.Dataset
	err error
}

func initialModel(cfg *config.Config, svc *dataset.Service, canRestore bool) model {
	def := view.LoadIngest
	if !cfg.Ingest.OnStart && canRestore {
		def = view.LoadRestore
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		cfg:         cfg,
		datasetSvc:  svc,
		currentView: ViewStartup,
		spinner:     s,
		startupView: view.NewStartupModel(cfg.Ingest.SourceDir, def, canRestore),
	}
}

func (m model) Init() tea.Cmd {
	return m.startupView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.LoadModeSelectedMsg:
		m.currentView = ViewLoading
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(msg.Mode))

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}

		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(msg.ds, m.datasetSvc, m.cfg.Ingest.SourceDir)

		return m, m.dashboardView.Init()
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewStartup:
		var newModel tea.Model
		newModel, cmd = m.startupView.Update(msg)
		m.startupView = newModel.(*view.StartupModel)
	case ViewLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		m.spinner, cmd = m.spinner.Update(msg)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewStartup:
		return m.startupView.View()
	case ViewLoading:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Loading sales data...", m.spinner.View()),
		)
	case ViewDashboard:
		return m.dashboardView.View()
	}

	return "Unknown View"
}

func (m model) loadCmd(mode view.LoadMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.IngestCtx()
		defer cancel()

		if mode == view.LoadRestore {
			ds, err := m.datasetSvc.Restore(ctx)
			return loadedMsg{ds: ds, err: err}
		}

		ds, err := m.datasetSvc.Ingest(ctx, m.cfg.Ingest.SourceDir)

		return loadedMsg{ds: ds, err: err}
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logOut := io.Discard
	if path := cfg.Log.File; path != "" {
		f, err := tea.LogToFile(path, "morsel")
		if err != nil {
			slog.Error("failed to open log file", "path", path, "error", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	logger.Init(logOut, cfg.Log.Level, cfg.Log.Format)

	repo, closeRepo, err := app.OpenRepository(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open canonical store", "store", cfg.Canonical.Store, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	svc := app.NewDatasetService(cfg, repo, metrics.New(prometheus.NewRegistry()))

	p := tea.NewProgram(initialModel(cfg, svc, repo != nil), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeRepo()
		os.Exit(1)
	}

	if m, ok := final.(model); ok && m.err != nil {
		fmt.Fprintln(os.Stderr, "failed to load sales data:", m.err)
		closeRepo()
		os.Exit(1)
	}
}
