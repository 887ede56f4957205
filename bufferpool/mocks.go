package bufferpool

import "github.com/stretchr/testify/mock"

// MockDiskManager is a hand-written testify mock, matching the donor's
// own style for this package rather than a generated mockery fake.
type MockDiskManager struct {
	mock.Mock
}

func (m *MockDiskManager) ReadPage(pageID int64, buf []byte) error {
	args := m.Called(pageID, buf)
	return args.Error(0)
}

func (m *MockDiskManager) WritePage(pageID int64, buf []byte) error {
	args := m.Called(pageID, buf)
	return args.Error(0)
}
