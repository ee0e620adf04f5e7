package ordering_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/metrics"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
	"github.com/vladislavdragonenkov/furniture/internal/storage/memory"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixedSource struct {
	values []int
	calls  int
}

func (s *fixedSource) IntN(n int) int {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v % n
}

// memoryStore — снимок в памяти для Restore/Persist.
type memoryStore struct {
	lines    []domain.OrderLine
	warnings []error
	loadErr  error
	saveErr  error
	saved    []domain.OrderLine
}

func (s *memoryStore) Load(context.Context) ([]domain.OrderLine, []error, error) {
	return s.lines, s.warnings, s.loadErr
}

func (s *memoryStore) Save(_ context.Context, lines []domain.OrderLine) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append([]domain.OrderLine(nil), lines...)
	return nil
}

func testCatalog() domain.CatalogRepository {
	return memory.NewCatalogRepository([]domain.Product{
		{Name: "Sofa", Number: 101, Category: "Living Room"},
		{Name: "Armchair", Number: 102, Category: "Living Room"},
		{Name: "Bed", Number: 205, Category: "Bedroom"},
	})
}

func newTestService(t *testing.T, publisher domain.EventPublisher, numbers ...int) (*ordering.Service, domain.LedgerRepository) {
	t.Helper()
	if len(numbers) == 0 {
		numbers = []int{4821}
	}
	ledger := memory.NewLedgerRepository()
	logger := log.New()
	logger.SetOutput(&bytes.Buffer{})
	svc := ordering.NewService(
		testCatalog(),
		ledger,
		ordering.NewNumberGenerator(&fixedSource{values: numbers}),
		publisher,
		metrics.NewLedgerMetricsWithRegisterer(prometheus.NewRegistry()),
		logger.WithField("component", "ordering-test"),
	)
	return svc, ledger
}

func TestBeginOrder_Validation(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.BeginOrder("\n")
	require.ErrorIs(t, err, domain.ErrCustomerRequired)

	_, err = svc.BeginOrder(strings.Repeat("a", ordering.MaxNameLength+1))
	require.ErrorIs(t, err, domain.ErrCustomerNameTooLong)
	require.True(t, domain.IsValidation(err))

	for _, name := range []string{"Bob order no. 7", "Bob order no.", "Bob order no"} {
		_, err = svc.BeginOrder(name)
		if name == "Bob order no" {
			require.NoError(t, err, name)
			continue
		}
		require.ErrorIs(t, err, domain.ErrCustomerNameInvalid, name)
		require.True(t, domain.IsValidation(err), name)
	}

	tx, err := svc.BeginOrder(strings.Repeat("a", ordering.MaxNameLength) + "\n")
	require.NoError(t, err)
	require.Len(t, tx.CustomerName(), ordering.MaxNameLength)
}

func TestTransaction_SofaScenario(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Type == domain.EventTypeOrderPlaced && e.OrderNumber == "4821" && len(e.Lines) == 1 && e.Lines[0].Quantity == 5
	})).Return(nil).Once()

	svc, ledger := newTestService(t, publisher)

	tx, err := svc.BeginOrder("Sam\n")
	require.NoError(t, err)
	require.Equal(t, "Sam", tx.CustomerName())
	require.Equal(t, "4821", tx.OrderNumber())

	merged, err := tx.Add(101, 2)
	require.NoError(t, err)
	require.False(t, merged)

	merged, err = tx.Add(101, 3)
	require.NoError(t, err)
	require.True(t, merged)

	require.True(t, tx.Commit(context.Background()))

	active := ledger.ListActive()
	require.Equal(t, []domain.OrderLine{
		{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 101, Quantity: 5},
	}, active)
	publisher.AssertExpectations(t)
}

func TestTransaction_AddRejectsUnknownProductAndNegativeQuantity(t *testing.T) {
	svc, ledger := newTestService(t, nil)

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)

	_, err = tx.Add(999, 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = tx.Add(101, -1)
	require.ErrorIs(t, err, domain.ErrQuantityInvalid)

	require.Empty(t, ledger.ListActive())
	require.False(t, tx.Commit(context.Background()))
}

func TestTransaction_ZeroQuantityAllowed(t *testing.T) {
	svc, ledger := newTestService(t, nil)

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)

	_, err = tx.Add(101, 0)
	require.NoError(t, err)
	require.Len(t, ledger.ListActive(), 1)
}

func TestTransaction_EmptyCommitPublishesNothing(t *testing.T) {
	publisher := &mockPublisher{}
	svc, _ := newTestService(t, publisher)

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	require.False(t, tx.Commit(context.Background()))

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTransaction_AddAfterCommit(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	_, err = tx.Add(101, 1)
	require.NoError(t, err)
	require.True(t, tx.Commit(context.Background()))
	require.True(t, tx.Commit(context.Background()))

	_, err = tx.Add(102, 1)
	require.ErrorIs(t, err, ordering.ErrTransactionClosed)
}

func TestTransaction_PublishFailureDoesNotFailOrder(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(domain.ErrEventPublish)

	svc, ledger := newTestService(t, publisher)
	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	_, err = tx.Add(101, 1)
	require.NoError(t, err)

	require.True(t, tx.Commit(context.Background()))
	require.Len(t, ledger.ListActive(), 1)
}

func TestBeginOrder_UniqueOrderNumbers(t *testing.T) {
	svc, _ := newTestService(t, nil, 4821, 4821, 17)

	first, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	_, err = first.Add(101, 1)
	require.NoError(t, err)
	first.Commit(context.Background())

	second, err := svc.BeginOrder("Ann")
	require.NoError(t, err)
	require.Equal(t, "0017", second.OrderNumber())
}

func TestProcessReturn(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Type == domain.EventTypeOrderPlaced
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Type == domain.EventTypeOrderReturned && e.OrderNumber == "4821" && e.CustomerName == "Sam" && len(e.Lines) == 2
	})).Return(nil).Once()

	svc, _ := newTestService(t, publisher, 4821, 7)
	ctx := context.Background()

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	_, err = tx.Add(101, 5)
	require.NoError(t, err)
	_, err = tx.Add(205, 1)
	require.NoError(t, err)
	tx.Commit(ctx)

	other, err := svc.BeginOrder("Ann")
	require.NoError(t, err)
	_, err = other.Add(102, 1)
	require.NoError(t, err)
	other.Commit(ctx)

	moved, err := svc.ProcessReturn(ctx, " 4821\n")
	require.NoError(t, err)
	require.Equal(t, 2, moved)

	_, err = svc.ProcessReturn(ctx, "4821")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	require.True(t, domain.IsNotFound(err))

	_, err = svc.ProcessReturn(ctx, "  ")
	require.ErrorIs(t, err, domain.ErrOrderNumberRequired)

	active := svc.ActiveOrders()
	require.Len(t, active, 1)
	require.Equal(t, "Ann", active[0].Key.CustomerName)

	returned := svc.ReturnedOrders()
	require.Len(t, returned, 1)
	require.Equal(t, 6, returned[0].TotalQuantity())
	for _, line := range svc.ReturnedLines() {
		require.True(t, line.IsReturn)
	}
	require.Equal(t, domain.LedgerStats{ActiveLines: 1, ReturnedLines: 2}, svc.Stats())
	publisher.AssertExpectations(t)
}

func TestRestoreAndPersist(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	store := &memoryStore{
		lines: []domain.OrderLine{
			{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 101, Quantity: 2},
			{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 101, Quantity: 3},
			{CustomerName: "Ann", OrderNumber: "0007", ProductNumber: 205, Quantity: 1},
		},
		warnings: []error{errors.New("line 4: malformed")},
	}

	loaded, err := svc.Restore(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 3, loaded)

	_, err = svc.ProcessReturn(ctx, "0007")
	require.NoError(t, err)

	require.NoError(t, svc.Persist(ctx, store))
	require.Equal(t, []domain.OrderLine{
		{CustomerName: "Sam", OrderNumber: "4821", ProductNumber: 101, Quantity: 5},
	}, store.saved)
}

func TestRestore_SourceUnavailable(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Restore(context.Background(), &memoryStore{loadErr: domain.ErrSourceUnavailable})
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.Empty(t, svc.ActiveOrders())
}

func TestPersist_SaveError(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.Persist(context.Background(), &memoryStore{saveErr: domain.ErrSourceUnavailable})
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestNewService_Defaults(t *testing.T) {
	svc := ordering.NewService(testCatalog(), memory.NewLedgerRepository(), nil, nil, nil, nil)

	tx, err := svc.BeginOrder("Sam")
	require.NoError(t, err)
	require.Len(t, tx.OrderNumber(), 4)
	_, err = tx.Add(101, 1)
	require.NoError(t, err)
	require.True(t, tx.Commit(context.Background()))
	require.Equal(t, 3, svc.Catalog().Len())
}
