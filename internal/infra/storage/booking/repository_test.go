package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// --- in-memory драйвер, перехватывающий запросы и их аргументы ---

type captureDriver struct {
	conn *captureConn
}

func (d *captureDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

type captureConn struct {
	lastQuery string
	lastArgs  []driver.Value
	// Строки ответа на следующий запрос; по умолчанию - created_at/updated_at
	rows func() driver.Rows
}

func (c *captureConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *captureConn) Close() error { return nil }

func (c *captureConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin is not supported")
}

func (c *captureConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.lastQuery = query
	c.lastArgs = make([]driver.Value, len(args))
	for i, a := range args {
		c.lastArgs[i] = a.Value
	}

	if c.rows != nil {
		return c.rows(), nil
	}
	now := time.Now()
	return &valueRows{
		columns: []string{"created_at", "updated_at"},
		values:  []driver.Value{now, now},
	}, nil
}

type valueRows struct {
	columns []string
	values  []driver.Value
	done    bool
}

func (r *valueRows) Columns() []string { return r.columns }

func (r *valueRows) Close() error { return nil }

func (r *valueRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	copy(dest, r.values)
	r.done = true
	return nil
}

func newCaptureDB(t *testing.T) (*sql.DB, *captureConn) {
	t.Helper()

	conn := &captureConn{}
	name := "booking-capture-" + t.Name()
	sql.Register(name, &captureDriver{conn: conn})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, conn
}

// --- тесты ---

func TestCreate_PendingBookingStoresNullEventID(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:         "booking-1",
		UserID:     "client-1",
		TelegramID: 500,
		LastName:   "Петров",
		FirstName:  "Иван",
		Phone:      "+7 (912) 345-67-89",
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusPending,
	}

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, conn.lastArgs, 12)
	assert.Contains(t, conn.lastQuery, "INSERT INTO bookings")

	// Пока событие календаря не создано, event_id уходит в базу как NULL.
	// Колонка в схеме должна быть nullable
	assert.Nil(t, conn.lastArgs[8])
	assert.Equal(t, "pending", conn.lastArgs[10])
}

func TestGetByID_NullEventIDScansAsNil(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	conn.rows = func() driver.Rows {
		return &valueRows{
			columns: bookingColumns,
			values: []driver.Value{
				"booking-1", "client-1", int64(500), "Петров", "Иван", "+7 (912) 345-67-89",
				start, start.Add(time.Hour), nil, false, "pending", true, false, false,
				start, start,
			},
		}
	}

	b, err := repo.GetByID(context.Background(), "booking-1")
	require.NoError(t, err)

	assert.Nil(t, b.EventID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.True(t, b.UsedPackage)
}
