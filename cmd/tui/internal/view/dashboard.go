package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/query"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// Ingester re-reads the source directory and publishes a new dataset.
type Ingester interface {
	Ingest(ctx context.Context, dir string) (*dataset.Dataset, error)
}

type DashboardModel struct {
	CommonModel
	ingester  Ingester
	sourceDir string

	ds      *dataset.Dataset
	picker  RegionPicker
	table   table.Model
	series  sales.Series
	spinner spinner.Model

	reloading bool
	err       error
	status    string
}

func NewDashboardModel(ds *dataset.Dataset, ingester Ingester, sourceDir string) DashboardModel {
	t := table.New(
		table.WithColumns(seriesColumns(BarWidth(0))),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	m := DashboardModel{
		ingester:  ingester,
		sourceDir: sourceDir,
		ds:        ds,
		picker:    NewRegionPicker(),
		table:     t,
		spinner:   sp,
	}
	m.refresh()

	return m
}

func seriesColumns(barWidth int) []table.Column {
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Revenue", Width: revenueWidth},
		{Title: "", Width: barWidth + 2},
	}
}

func (m DashboardModel) Title() string { return "Pink Morsel Sales" }

func (m DashboardModel) ShortHelp() string {
	return "←/→ or 1-5: region | r: re-ingest | q: quit"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Selected returns the current region selector.
func (m DashboardModel) Selected() string { return m.picker.Selected() }

// Series returns the series currently displayed.
func (m DashboardModel) Series() sales.Series { return m.series }

// Err returns the error shown inline, if any.
func (m DashboardModel) Err() error { return m.err }

// Rows returns the rendered table rows.
func (m DashboardModel) Rows() []table.Row { return m.table.Rows() }

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reloadMsg:
		m.reloading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.ds = msg.ds
		m.status = fmt.Sprintf("Loaded %d records from %d sources", len(msg.ds.Records), len(msg.ds.Sources))
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))
		m.table.SetColumns(seriesColumns(BarWidth(m.Width)))
		m.table.SetRows(SeriesRows(m.series, sales.ReferenceDate, BarWidth(m.Width)))

		return m, nil

	case spinner.TickMsg:
		if !m.reloading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.reloading || m.ingester == nil {
				return m, nil
			}

			m.reloading = true
			m.status = ""

			return m, tea.Batch(m.spinner.Tick, m.reloadCmd())
		}

		var changed bool
		if m.picker, changed = m.picker.Update(msg); changed {
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// refresh recomputes the series for the selected region against the current dataset.
func (m *DashboardModel) refresh() {
	var records []sales.Record
	if m.ds != nil {
		records = m.ds.Records
	}

	series, err := query.Query(records, m.picker.Selected())
	if err != nil {
		m.err = err
		m.series = nil
		m.table.SetRows(nil)

		return
	}

	m.err = nil
	m.series = series
	m.table.SetRows(SeriesRows(series, sales.ReferenceDate, BarWidth(m.Width)))
	m.table.GotoTop()
}

func (m DashboardModel) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(m.Title()),
		m.picker.View(),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := fmt.Sprintf("Total: %s over %d days", FormatRevenue(m.series.Total()), len(m.series))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		footer,
	)

	switch {
	case m.reloading:
		content += fmt.Sprintf("\n%s Re-ingesting %s...", m.spinner.View(), m.sourceDir)
	case m.err != nil:
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		content += "\n" + faintStyle.Render(m.status)
	}

	content += "\n\n" + faintStyle.Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type reloadMsg struct {
	ds  *dataset.Dataset
	err error
}

func (m DashboardModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := IngestCtx()
		defer cancel()

		ds, err := m.ingester.Ingest(ctx, m.sourceDir)

		return reloadMsg{ds: ds, err: err}
	}
}
