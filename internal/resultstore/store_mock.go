package resultstore

import (
	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/stretchr/testify/mock"
)

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// Record implements the ResultStore interface.
func (m *MockResultStore) Record(rec contract.ResultRecord) (int64, error) {
	args := m.Called(rec)
	return args.Get(0).(int64), args.Error(1)
}

// List implements the ResultStore interface.
func (m *MockResultStore) List(limit int) ([]contract.ResultRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]contract.ResultRecord)
	return records, args.Error(1)
}

// Clear implements the ResultStore interface.
func (m *MockResultStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
