package ledger

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightai/internal/domain"
)

func testBooking() domain.Booking {
	return domain.Booking{
		BookingID:        "BK-000001",
		ConfirmationCode: "D55B8F3C",
		Email:            "a@b.com",
		Destination:      "london",
		Date:             "2026-04-04",
		NumTickets:       2,
		Class:            domain.FareClassEconomy,
		TotalPrice:       1598,
		LoyaltyPoints:    159,
		Preferences: domain.Preferences{
			Seats:           "window",
			Meals:           "vegetarian",
			SpecialRequests: "aisle-adjacent, please",
		},
		CreatedAt: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVLedger_Initialize_CreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	l := NewCSVLedger(path)

	require.NoError(t, l.Initialize(context.Background()))

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestCSVLedger_Initialize_DoesNotTruncateExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	l := NewCSVLedger(path)
	ctx := context.Background()

	require.NoError(t, l.Initialize(ctx))
	require.NoError(t, l.Append(ctx, testBooking()))

	require.NoError(t, l.Initialize(ctx))

	rows := readRows(t, path)
	assert.Len(t, rows, 2)
}

func TestCSVLedger_Initialize_BadDirectory(t *testing.T) {
	l := NewCSVLedger(filepath.Join(t.TempDir(), "missing", "bookings.csv"))
	assert.Error(t, l.Initialize(context.Background()))
}

func TestCSVLedger_Append_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	l := NewCSVLedger(path)
	ctx := context.Background()

	require.NoError(t, l.Initialize(ctx))

	booking := testBooking()
	require.NoError(t, l.Append(ctx, booking))

	rows := readRows(t, path)
	require.Len(t, rows, 2)

	row := rows[1]
	require.Len(t, row, len(Columns))
	assert.Equal(t, booking.BookingID, row[0])
	assert.Equal(t, booking.ConfirmationCode, row[1])
	assert.Equal(t, booking.Email, row[2])
	assert.Equal(t, booking.Destination, row[3])
	assert.Equal(t, booking.Date, row[4])

	numTickets, err := strconv.Atoi(row[5])
	require.NoError(t, err)
	assert.Equal(t, booking.NumTickets, numTickets)

	assert.Equal(t, string(booking.Class), row[6])

	totalPrice, err := strconv.Atoi(row[7])
	require.NoError(t, err)
	assert.Equal(t, booking.TotalPrice, totalPrice)

	loyalty, err := strconv.Atoi(row[8])
	require.NoError(t, err)
	assert.Equal(t, booking.LoyaltyPoints, loyalty)

	assert.Equal(t, booking.Preferences.Seats, row[9])
	assert.Equal(t, booking.Preferences.Meals, row[10])
	assert.Equal(t, booking.Preferences.MedicalAssistance, row[11])
	assert.Equal(t, booking.Preferences.SpecialRequests, row[12])
	assert.Equal(t, booking.CreatedAt.Format(BookingTimeLayout), row[13])
}

func TestCSVLedger_Append_MultipleRowsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	l := NewCSVLedger(path)
	ctx := context.Background()

	require.NoError(t, l.Initialize(ctx))

	first := testBooking()
	second := testBooking()
	second.BookingID = "BK-000002"
	second.ConfirmationCode = "E9971CF1"

	require.NoError(t, l.Append(ctx, first))
	require.NoError(t, l.Append(ctx, second))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "BK-000001", rows[1][0])
	assert.Equal(t, "BK-000002", rows[2][0])
}

func TestMemoryLedger(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, l.Initialize(ctx))
	require.NoError(t, l.Append(ctx, testBooking()))

	bookings := l.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, testBooking(), bookings[0])
}
