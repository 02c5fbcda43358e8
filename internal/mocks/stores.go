// Package mocks provides testify mocks for the port interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prmf/premium-api/internal/domain"
	"github.com/prmf/premium-api/internal/ports"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRateStore is a mock implementation of ports.RateStore.
type MockRateStore struct {
	mock.Mock
}

// NewMockRateStore creates a MockRateStore with expectations asserted at
// test cleanup.
func NewMockRateStore(t testingT) *MockRateStore {
	m := &MockRateStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Find implements ports.RateStore.
func (m *MockRateStore) Find(ctx context.Context, age int, familySize domain.FamilySize) (*domain.RateRecord, error) {
	args := m.Called(ctx, age, familySize)

	var rate *domain.RateRecord
	if v := args.Get(0); v != nil {
		rate = v.(*domain.RateRecord)
	}

	return rate, args.Error(1)
}

// MockHistoryStore is a mock implementation of ports.HistoryStore.
type MockHistoryStore struct {
	mock.Mock
}

// NewMockHistoryStore creates a MockHistoryStore with expectations asserted
// at test cleanup.
func NewMockHistoryStore(t testingT) *MockHistoryStore {
	m := &MockHistoryStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Append implements ports.HistoryStore.
func (m *MockHistoryStore) Append(ctx context.Context, record *domain.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListByOwner implements ports.HistoryStore.
func (m *MockHistoryStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, ownerID, limit)

	var records []domain.HistoryRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.HistoryRecord)
	}

	return records, args.Error(1)
}

// MockIdentityProvider is a mock implementation of ports.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

// NewMockIdentityProvider creates a MockIdentityProvider with expectations
// asserted at test cleanup.
func NewMockIdentityProvider(t testingT) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Resolve implements ports.IdentityProvider.
func (m *MockIdentityProvider) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)

	var identity *domain.Identity
	if v := args.Get(0); v != nil {
		identity = v.(*domain.Identity)
	}

	return identity, args.Error(1)
}

// MockHealthRegistry is a mock implementation of ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

// NewMockHealthRegistry creates a MockHealthRegistry with expectations
// asserted at test cleanup.
func NewMockHealthRegistry(t testingT) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Register implements ports.HealthRegistry.
func (m *MockHealthRegistry) Register(checker ports.HealthChecker) error {
	args := m.Called(checker)
	return args.Error(0)
}

// CheckAll implements ports.HealthRegistry.
func (m *MockHealthRegistry) CheckAll(ctx context.Context) *ports.HealthResult {
	args := m.Called(ctx)

	var result *ports.HealthResult
	if v := args.Get(0); v != nil {
		result = v.(*ports.HealthResult)
	}

	return result
}
