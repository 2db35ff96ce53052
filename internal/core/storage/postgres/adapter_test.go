package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/period"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestAdapter_GetFreightRecords(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetFreightRecords)).
		WithArgs(start, end, pq.Array([]string{"ORD"}), pq.Array([]string{}), pq.Array([]string{}), pq.Array([]string{"road"})).
		WillReturnRows(sqlmock.NewRows(freightRowColumns()).
			AddRow("rec-1", start, "ORD", "LAX", "carrier-1", []byte("1000.0000"), "USD", "road").
			AddRow("rec-2", end, "ORD", nil, nil, []byte("1400.5000"), "USD", "road"),
		).RowsWillBeClosed()

	records, err := adapter.GetFreightRecords(context.Background(), storage.RecordQuery{
		StartDate:      start.Add(5 * time.Hour),
		EndDate:        end,
		OriginIDs:      []string{"ORD"},
		TransportModes: []string{"road"},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "rec-1", records[0].ID)
	require.Equal(t, "LAX", records[0].DestinationID)
	require.Equal(t, "1000", records[0].FreightCharge.String())
	require.Equal(t, "", records[1].DestinationID)
	require.Equal(t, "1400.5", records[1].FreightCharge.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetFreightRecords_QueryError(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetFreightRecords)).
		WillReturnError(errors.New("connection reset"))

	_, err := adapter.GetFreightRecords(context.Background(), storage.RecordQuery{})
	require.ErrorContains(t, err, "failed to query freight records")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetTimePeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		assertions func(t *testing.T, p *v1.TimePeriod, err error)
	}{
		{
			name: "found",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetTimePeriod)).
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows(periodRowColumns()).
						AddRow("q1", "Q1 2026", start, end, "custom", int64(14)))
			},
			assertions: func(t *testing.T, p *v1.TimePeriod, err error) {
				require.NoError(t, err)
				require.Equal(t, "Q1 2026", p.Name)
				require.Equal(t, period.Custom, p.Granularity)
				require.Equal(t, 14, p.CustomIntervalDays)
				require.Equal(t, end, p.EndDate)
			},
		},
		{
			name: "missing maps to ErrNotFound",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetTimePeriod)).
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows(periodRowColumns()))
			},
			assertions: func(t *testing.T, p *v1.TimePeriod, err error) {
				require.ErrorIs(t, err, storage.ErrNotFound)
				require.Nil(t, p)
			},
		},
		{
			name: "unknown granularity is rejected",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetTimePeriod)).
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows(periodRowColumns()).
						AddRow("q1", "Q1 2026", start, end, "hourly", nil))
			},
			assertions: func(t *testing.T, p *v1.TimePeriod, err error) {
				require.Error(t, err)
				require.NotErrorIs(t, err, storage.ErrNotFound)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock)
			p, err := adapter.GetTimePeriod(context.Background(), "q1")
			tc.assertions(t, p, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_SaveTimePeriod(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	p := &v1.TimePeriod{
		ID:          "march",
		Name:        "March",
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Granularity: period.Weekly,
	}

	mock.ExpectExec(regexp.QuoteMeta(querySaveTimePeriod)).
		WithArgs("march", "March", p.StartDate, p.EndDate, "weekly", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.SaveTimePeriod(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CloseReturnsDBCloseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbCloseErr := errors.New("db close failed")

	mock.ExpectPrepare(regexp.QuoteMeta(queryGetFreightRecords)).WillBeClosed()
	mock.ExpectPrepare(regexp.QuoteMeta(queryGetTimePeriod)).WillBeClosed()
	mock.ExpectPrepare(regexp.QuoteMeta(querySaveTimePeriod)).WillBeClosed()
	adapter, err := newAdapter(db)
	require.NoError(t, err)

	mock.ExpectClose().WillReturnError(dbCloseErr)

	err = adapter.Close()
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to close database")
	require.ErrorIs(t, err, dbCloseErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAdapter_PrepareFailureClosesStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare(regexp.QuoteMeta(queryGetFreightRecords)).WillBeClosed()
	mock.ExpectPrepare(regexp.QuoteMeta(queryGetTimePeriod)).WillReturnError(errors.New("syntax error"))

	_, err = newAdapter(db)
	require.ErrorContains(t, err, "failed to prepare getTimePeriod statement")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSchema_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").WithArgs("freight_records").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("time_periods").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = validateSchema(context.Background(), db)
	require.ErrorContains(t, err, "time_periods table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta(queryGetFreightRecords))
	mock.ExpectPrepare(regexp.QuoteMeta(queryGetTimePeriod))
	mock.ExpectPrepare(regexp.QuoteMeta(querySaveTimePeriod))
	adapter, err := newAdapter(db)
	require.NoError(t, err)

	return adapter, mock, db
}

func freightRowColumns() []string {
	return []string{
		"id",
		"record_date",
		"origin_id",
		"destination_id",
		"carrier_id",
		"freight_charge",
		"currency_code",
		"transport_mode",
	}
}

func periodRowColumns() []string {
	return []string{"id", "name", "start_date", "end_date", "granularity", "custom_interval_days"}
}
