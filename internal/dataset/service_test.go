package dataset_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

func raw(n int, product, price, qty, date, region string) sales.RawRecord {
	return sales.RawRecord{Row: n, Product: product, Price: price, Quantity: qty, Date: date, Region: region}
}

var (
	goodTable = sales.Table{
		Source: "daily_sales_data_0.csv",
		Rows: []sales.RawRecord{
			raw(2, "Pink Morsel", "$3.00", "2", "2021-01-10", "north"),
			raw(3, "Gold Morsel", "$5.00", "1", "2021-01-10", "north"),
		},
	}
	badTable = sales.Table{
		Source: "daily_sales_data_1.csv",
		Rows:   []sales.RawRecord{raw(2, "pink morsel", "abc", "1", "2021-01-11", "south")},
	}
)

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func TestService_Ingest(t *testing.T) {
	type testCase struct {
		name        string
		opts        dataset.Options
		tables      []sales.Table
		readErr     error
		setupRepo   func(m *dataset.MockRepository)
		wantRecords int
		wantSources []string
		wantErr     bool
	}

	tests := []testCase{
		{
			name:   "Success",
			tables: []sales.Table{goodTable},
			setupRepo: func(m *dataset.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantRecords: 1,
			wantSources: []string{"daily_sales_data_0.csv"},
		},
		{
			name:        "Empty Source Set",
			tables:      nil,
			setupRepo:   func(m *dataset.MockRepository) { m.EXPECT().Save(gomock.Any(), gomock.Len(0)).Return(nil) },
			wantRecords: 0,
		},
		{
			name:    "Malformed Source Aborts",
			tables:  []sales.Table{goodTable, badTable},
			wantErr: true,
		},
		{
			name:   "Malformed Source Skipped",
			opts:   dataset.Options{SkipMalformed: true},
			tables: []sales.Table{goodTable, badTable},
			setupRepo: func(m *dataset.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantRecords: 1,
			wantSources: []string{"daily_sales_data_0.csv"},
		},
		{
			name:    "Read Error",
			readErr: errors.New("no such directory"),
			wantErr: true,
		},
		{
			name:   "Save Error",
			tables: []sales.Table{goodTable},
			setupRepo: func(m *dataset.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := dataset.NewMockRepository(ctrl)
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			sources := dataset.NewMockSourceReader(ctrl)
			sources.EXPECT().ReadDir("data").Return(tt.tables, tt.readErr)

			svc := dataset.NewService(repo, sources, newMetrics(), tt.opts)
			got, err := svc.Ingest(context.Background(), "data")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Nil(t, svc.Current())

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Records, tt.wantRecords)
			assert.Equal(t, tt.wantSources, got.Sources)
			assert.NotEmpty(t, got.ID)
			assert.Same(t, got, svc.Current())
		})
	}
}

func TestService_Ingest_FailureKeepsPreviousDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := dataset.NewMockSourceReader(ctrl)
	m := newMetrics()
	svc := dataset.NewService(nil, sources, m, dataset.Options{})

	sources.EXPECT().ReadDir("data").Return([]sales.Table{goodTable}, nil)
	first, err := svc.Ingest(context.Background(), "data")
	require.NoError(t, err)

	sources.EXPECT().ReadDir("data").Return([]sales.Table{goodTable, badTable}, nil)
	_, err = svc.Ingest(context.Background(), "data")

	var priceErr *sales.MalformedPriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, "daily_sales_data_1.csv", priceErr.Source)
	assert.Equal(t, 2, priceErr.Row)

	assert.Same(t, first, svc.Current())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.IngestRuns.WithLabelValues(metrics.OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.IngestRuns.WithLabelValues(metrics.OutcomeError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DatasetRecords))
}

func TestService_Ingest_NewIDPerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := dataset.NewMockSourceReader(ctrl)
	sources.EXPECT().ReadDir("data").Return([]sales.Table{goodTable}, nil).Times(2)

	svc := dataset.NewService(nil, sources, newMetrics(), dataset.Options{})

	first, err := svc.Ingest(context.Background(), "data")
	require.NoError(t, err)

	second, err := svc.Ingest(context.Background(), "data")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, svc.Current())
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dataset.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return([]sales.Record{{Region: "north"}, {Region: "south"}}, nil)

	svc := dataset.NewService(repo, dataset.NewMockSourceReader(ctrl), newMetrics(), dataset.Options{})

	got, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
	assert.Same(t, got, svc.Current())
}

func TestService_Restore_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dataset.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, dataset.ErrNotFound)

	svc := dataset.NewService(repo, dataset.NewMockSourceReader(ctrl), newMetrics(), dataset.Options{})

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, dataset.ErrNotFound)
	assert.Nil(t, svc.Current())
}

func TestService_Restore_NoRepository(t *testing.T) {
	svc := dataset.NewService(nil, nil, newMetrics(), dataset.Options{})

	_, err := svc.Restore(context.Background())
	assert.Error(t, err)
}
