package game

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- NetworkSession ---

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNetworkSession) Close(reason string) {
	m.Called(reason)
}

// --- RoomStore ---

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) SaveRoom(ctx context.Context, roomID string, createdAt time.Time) error {
	args := m.Called(ctx, roomID, createdAt)
	return args.Error(0)
}

func (m *MockRoomStore) SaveResult(ctx context.Context, roomID string, winner string, scores [2]int, rounds int) error {
	args := m.Called(ctx, roomID, winner, scores, rounds)
	return args.Error(0)
}
