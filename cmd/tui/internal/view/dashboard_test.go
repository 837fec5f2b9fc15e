package view_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/morsel/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type fakeIngester struct {
	ds  *dataset.Dataset
	err error
}

func (f *fakeIngester) Ingest(context.Context, string) (*dataset.Dataset, error) {
	return f.ds, f.err
}

func record(revenue, date, region string) sales.Record {
	d, _ := time.Parse(time.DateOnly, date)
	return sales.Record{Revenue: decimal.RequireFromString(revenue), Date: d, Region: region}
}

func sampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID: uuid.New(),
		Records: []sales.Record{
			record("10", "2021-01-14", "north"),
			record("5", "2021-01-14", "south"),
			record("7", "2021-01-16", "north"),
		},
	}
}

func press(t *testing.T, m view.DashboardModel, keys ...tea.KeyMsg) view.DashboardModel {
	t.Helper()

	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(view.DashboardModel)
	}

	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboard_StartsOnAll(t *testing.T) {
	m := view.NewDashboardModel(sampleDataset(), nil, "data")

	assert.Equal(t, sales.SelectorAll, m.Selected())
	require.Len(t, m.Series(), 2)
	assert.Equal(t, "15", m.Series()[0].Revenue.String())
	assert.NoError(t, m.Err())
}

func TestDashboard_RegionKeys(t *testing.T) {
	m := view.NewDashboardModel(sampleDataset(), nil, "data")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "north", m.Selected())
	require.Len(t, m.Series(), 2)
	assert.Equal(t, "10", m.Series()[0].Revenue.String())

	m = press(t, m, runes("4"))
	assert.Equal(t, "south", m.Selected())
	require.Len(t, m.Series(), 1)
	assert.Equal(t, "5", m.Series()[0].Revenue.String())

	m = press(t, m, runes("5"))
	assert.Equal(t, "west", m.Selected())
	assert.Empty(t, m.Series())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, sales.SelectorAll, m.Selected())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "west", m.Selected())
}

func TestDashboard_ReloadFailureShownInline(t *testing.T) {
	ds := sampleDataset()
	m := view.NewDashboardModel(ds, &fakeIngester{err: errors.New("malformed price")}, "data")

	next, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)

	m = next.(view.DashboardModel)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var reloaded tea.Msg
	for _, c := range batch {
		if msg := c(); msg != nil {
			if _, tick := msg.(spinner.TickMsg); !tick {
				reloaded = msg
			}
		}
	}
	require.NotNil(t, reloaded)

	next, _ = m.Update(reloaded)
	m = next.(view.DashboardModel)

	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "malformed price")
	require.Len(t, m.Series(), 2)
}

func TestDashboard_ResizeScalesBars(t *testing.T) {
	m := view.NewDashboardModel(sampleDataset(), nil, "data")
	assert.Equal(t, repeat(30), m.Rows()[0][2])

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(view.DashboardModel)

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, repeat(view.BarWidth(100)), m.Rows()[0][2])

	next, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 40})
	m = next.(view.DashboardModel)

	assert.Equal(t, repeat(10), m.Rows()[0][2])
}

func TestStartup_TracksWindowSize(t *testing.T) {
	m := view.NewStartupModel("data", view.LoadIngest, true)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m = next.(*view.StartupModel)

	assert.Equal(t, 40, m.Width)
	assert.Equal(t, 12, m.Height)
}
