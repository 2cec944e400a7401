package mocks

import (
	"context"

	"github.com/hostcfg/podnet/internal/netdev"
)

// MockProvider is a mock implementation of the netdev.Provider interface.
//
// It allows tests to provide custom behavior through function fields.
// If DevicesFunc is nil, the static DeviceList is returned.
type MockProvider struct {
	// DevicesFunc is called by Devices if not nil
	DevicesFunc func(ctx context.Context) ([]netdev.Device, error)

	// DeviceList is returned by Devices when DevicesFunc is nil
	DeviceList []netdev.Device

	// FlushCalls counts FlushCache calls
	FlushCalls int
}

func NewMockProvider(devices ...netdev.Device) *MockProvider {
	return &MockProvider{DeviceList: devices}
}

func (m *MockProvider) Devices(ctx context.Context) ([]netdev.Device, error) {
	if m.DevicesFunc != nil {
		return m.DevicesFunc(ctx)
	}
	return m.DeviceList, nil
}

func (m *MockProvider) FlushCache() {
	m.FlushCalls++
}
