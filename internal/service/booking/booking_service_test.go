package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"flightai/internal/catalog"
	"flightai/internal/domain"
	"flightai/internal/ledger"
	"flightai/internal/seats"
)

var testStart = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

// a date inside the 30-day availability window
var testDate = testStart.AddDate(0, 0, 20).Format("2006-01-02")

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedger) Append(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func fixedNow() time.Time { return testStart }

func newTestService(led ledger.Ledger, opts ...Option) (*Service, *seats.Inventory) {
	cat := catalog.New(catalog.WithNow(fixedNow))
	inv := seats.New(cat.Destinations(), seats.WithNow(fixedNow))
	opts = append(opts, WithNow(fixedNow))
	return NewService(cat, inv, led, zap.NewNop(), opts...), inv
}

func TestService_Book_Success(t *testing.T) {
	led := ledger.NewMemoryLedger()
	svc, inv := newTestService(led)

	ctx := context.Background()
	booking, err := svc.Book(ctx, BookInput{
		Destination: "london",
		Date:        testDate,
		NumTickets:  2,
		Class:       "economy",
		Email:       "a@b.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, "BK-000001", booking.BookingID)
	assert.Equal(t, "D55B8F3C", booking.ConfirmationCode)
	assert.Equal(t, "london", booking.Destination)
	assert.Equal(t, domain.FareClassEconomy, booking.Class)
	assert.Equal(t, 2, booking.NumTickets)
	assert.Equal(t, 799*2, booking.TotalPrice)
	assert.Equal(t, 159, booking.LoyaltyPoints)
	assert.Equal(t, testStart, booking.CreatedAt)

	assert.Equal(t, 98, inv.Check("london", testDate, domain.FareClassEconomy))

	appended := led.Bookings()
	assert.Len(t, appended, 1)
	assert.Equal(t, *booking, appended[0])
}

func TestService_Book_UppercaseInputs(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())

	booking, err := svc.Book(context.Background(), BookInput{
		Destination: "Tokyo",
		Date:        testDate,
		NumTickets:  1,
		Class:       "First",
		Email:       "a@b.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tokyo", booking.Destination)
	assert.Equal(t, domain.FareClassFirst, booking.Class)
	assert.Equal(t, 8400, booking.TotalPrice)
}

func TestService_Book_ValidationErrors(t *testing.T) {
	led := ledger.NewMemoryLedger()
	svc, inv := newTestService(led)
	ctx := context.Background()

	testCases := []struct {
		name    string
		input   BookInput
		errType interface{}
	}{
		{
			name:    "date 400 days out",
			input:   BookInput{Destination: "london", Date: testStart.AddDate(0, 0, 400).Format("2006-01-02"), NumTickets: 1, Class: "economy", Email: "a@b.com"},
			errType: new(*domain.InvalidDateError),
		},
		{
			name:    "malformed date",
			input:   BookInput{Destination: "london", Date: "tomorrow", NumTickets: 1, Class: "economy", Email: "a@b.com"},
			errType: new(*domain.InvalidDateError),
		},
		{
			name:    "email without at sign",
			input:   BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "economy", Email: "not-an-email"},
			errType: new(*domain.InvalidEmailError),
		},
		{
			name:    "email without dot",
			input:   BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "economy", Email: "a@b"},
			errType: new(*domain.InvalidEmailError),
		},
		{
			name:    "unknown destination",
			input:   BookInput{Destination: "madrid", Date: testDate, NumTickets: 1, Class: "economy", Email: "a@b.com"},
			errType: new(*domain.UnknownRouteError),
		},
		{
			name:    "unknown class",
			input:   BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "premium", Email: "a@b.com"},
			errType: new(*domain.UnknownRouteError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := svc.Book(ctx, tc.input)
			assert.Error(t, err)
			assert.Nil(t, booking)
			assert.ErrorAs(t, err, tc.errType)
		})
	}

	// no rejected attempt touched the ledger or the counters
	assert.Empty(t, led.Bookings())
	assert.Equal(t, 100, inv.Check("london", testDate, domain.FareClassEconomy))
}

// The email check is deliberately permissive: "@" and "." anywhere qualify.
func TestService_Book_LaxEmailAccepted(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())

	booking, err := svc.Book(context.Background(), BookInput{
		Destination: "berlin",
		Date:        testDate,
		NumTickets:  1,
		Class:       "economy",
		Email:       ".@",
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestService_Book_NumTicketsMustBePositive(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())

	for _, n := range []int{0, -3} {
		booking, err := svc.Book(context.Background(), BookInput{
			Destination: "london", Date: testDate, NumTickets: n, Class: "economy", Email: "a@b.com",
		})
		assert.Error(t, err)
		assert.Nil(t, booking)
		assert.Contains(t, err.Error(), "must be positive")
	}
}

func TestService_Book_InsufficientAvailability(t *testing.T) {
	led := ledger.NewMemoryLedger()
	svc, inv := newTestService(led)
	ctx := context.Background()

	input := BookInput{Destination: "london", Date: testDate, NumTickets: 2, Class: "economy", Email: "a@b.com"}

	// 50 bookings of 2 drain the 100 economy seats
	for i := 0; i < 50; i++ {
		_, err := svc.Book(ctx, input)
		assert.NoError(t, err)
	}
	assert.Zero(t, inv.Check("london", testDate, domain.FareClassEconomy))

	booking, err := svc.Book(ctx, input)
	assert.Error(t, err)
	assert.Nil(t, booking)

	var noSeats *domain.InsufficientSeatsError
	assert.ErrorAs(t, err, &noSeats)
	assert.Equal(t, 2, noSeats.Requested)
	assert.Equal(t, 0, noSeats.Available)

	// rejected booking left the counter and the ledger unchanged
	assert.Zero(t, inv.Check("london", testDate, domain.FareClassEconomy))
	assert.Len(t, led.Bookings(), 50)

	// other classes on the same date still book fine
	b, err := svc.Book(ctx, BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "business", Email: "a@b.com"})
	assert.NoError(t, err)
	assert.Equal(t, 2399, b.TotalPrice)
}

func TestService_Book_LedgerErrorRestoresSeats(t *testing.T) {
	mockLedger := &MockLedger{}
	svc, inv := newTestService(mockLedger)

	ctx := context.Background()
	expectedErr := errors.New("disk full")
	mockLedger.On("Append", ctx, mock.AnythingOfType("domain.Booking")).Return(expectedErr).Once()

	booking, err := svc.Book(ctx, BookInput{
		Destination: "paris", Date: testDate, NumTickets: 3, Class: "economy", Email: "a@b.com",
	})

	assert.Error(t, err)
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 100, inv.Check("paris", testDate, domain.FareClassEconomy))

	mockLedger.AssertExpectations(t)
}

func TestService_Book_UniqueSequentialIDs(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())
	ctx := context.Background()

	// the clock is frozen, so distinct IDs cannot come from timestamps
	seen := map[string]bool{}
	for i := 1; i <= 3; i++ {
		b, err := svc.Book(ctx, BookInput{Destination: "berlin", Date: testDate, NumTickets: 1, Class: "economy", Email: "a@b.com"})
		assert.NoError(t, err)
		assert.False(t, seen[b.BookingID])
		seen[b.BookingID] = true
	}
	assert.True(t, seen["BK-000001"])
	assert.True(t, seen["BK-000002"])
	assert.True(t, seen["BK-000003"])
}

func TestService_Book_PublishesEvents(t *testing.T) {
	mockProducer := &MockProducer{}
	svc, _ := newTestService(ledger.NewMemoryLedger(),
		WithProducer(mockProducer, "booking-events"),
		WithNotificationsTopic("booking-notifications"),
	)

	ctx := context.Background()
	mockProducer.On("Publish", ctx, "booking-events", "BK-000001", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-notifications", "BK-000001", mock.Anything).Return(nil).Once()

	_, err := svc.Book(ctx, BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "economy", Email: "a@b.com"})

	assert.NoError(t, err)
	mockProducer.AssertExpectations(t)
}

func TestService_Book_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockProducer := &MockProducer{}
	led := ledger.NewMemoryLedger()
	svc, _ := newTestService(led, WithProducer(mockProducer, "booking-events"))

	ctx := context.Background()
	mockProducer.On("Publish", ctx, "booking-events", "BK-000001", mock.Anything).Return(errors.New("kafka down")).Once()

	booking, err := svc.Book(ctx, BookInput{Destination: "london", Date: testDate, NumTickets: 1, Class: "economy", Email: "a@b.com"})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Len(t, led.Bookings(), 1)
	mockProducer.AssertExpectations(t)
}

func TestService_Quote(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())
	ctx := context.Background()

	quote, err := svc.Quote(ctx, "berlin", testDate, "business")
	assert.NoError(t, err)
	assert.Equal(t, 1499, quote.Price)
	assert.Equal(t, 20, quote.Availability)
	assert.Equal(t, 149, quote.LoyaltyPoints)

	// quoting never consumes seats
	quote, err = svc.Quote(ctx, "berlin", testDate, "business")
	assert.NoError(t, err)
	assert.Equal(t, 20, quote.Availability)
}

func TestService_Quote_AfterBookingReflectsAvailability(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())
	ctx := context.Background()

	_, err := svc.Book(ctx, BookInput{Destination: "berlin", Date: testDate, NumTickets: 5, Class: "business", Email: "a@b.com"})
	assert.NoError(t, err)

	quote, err := svc.Quote(ctx, "berlin", testDate, "business")
	assert.NoError(t, err)
	assert.Equal(t, 15, quote.Availability)
}

func TestService_Quote_UnknownRoute(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())

	var unknown *domain.UnknownRouteError
	_, err := svc.Quote(context.Background(), "madrid", testDate, "economy")
	assert.ErrorAs(t, err, &unknown)

	_, err = svc.Quote(context.Background(), "london", testDate, "premium")
	assert.ErrorAs(t, err, &unknown)
}

func TestService_Quote_OutOfWindowDateHasZeroAvailability(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())

	quote, err := svc.Quote(context.Background(), "london", testStart.AddDate(0, 0, 60).Format("2006-01-02"), "economy")
	assert.NoError(t, err)
	assert.Equal(t, 799, quote.Price)
	assert.Zero(t, quote.Availability)
}

func TestService_AvailableDates(t *testing.T) {
	svc, _ := newTestService(ledger.NewMemoryLedger())
	ctx := context.Background()

	dates, err := svc.AvailableDates(ctx, "London")
	assert.NoError(t, err)
	assert.Len(t, dates, seats.WindowDays)

	var unknown *domain.UnknownRouteError
	_, err = svc.AvailableDates(ctx, "madrid")
	assert.ErrorAs(t, err, &unknown)
}

func TestConfirmationCode(t *testing.T) {
	code := ConfirmationCode("BK-000001")
	assert.Equal(t, "D55B8F3C", code)
	assert.Equal(t, "E9971CF1", ConfirmationCode("BK-000002"))

	// pure function of the booking ID
	assert.Equal(t, code, ConfirmationCode("BK-000001"))

	format := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for _, id := range []string{"BK-000001", "BK-000099", "BK-123456"} {
		assert.Regexp(t, format, ConfirmationCode(id))
	}
}

func TestLoyaltyPoints(t *testing.T) {
	testCases := []struct {
		total int
		want  int
	}{
		{total: 0, want: 0},
		{total: 1, want: 0},
		{total: 10, want: 1},
		{total: 99, want: 9},
		{total: 1000, want: 100},
		{total: 1598, want: 159},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, loyaltyPoints(tc.total))
	}
}
