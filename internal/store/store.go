// Package store persists method instance settings for the HTTP host adapter.
package store

import (
	"context"
	"strconv"
	"sync"

	"zipshipping/internal/errors"
	"zipshipping/internal/rate"
)

const resourceName = "method settings"

// Store reads and writes the string settings blob of a method instance.
// Get returns a NOT_FOUND error for an instance that has never been saved.
type Store interface {
	Get(ctx context.Context, instanceID int) (rate.Settings, error)
	Save(ctx context.Context, instanceID int, s rate.Settings) error
}

// Load returns the typed config for an instance. Unsaved instances get the defaults.
func Load(ctx context.Context, st Store, instanceID int) (rate.MethodConfig, error) {
	s, err := st.Get(ctx, instanceID)
	if errors.IsType(err, errors.TypeNotFound) {
		s = rate.DefaultSettings()
	} else if err != nil {
		return rate.MethodConfig{}, errors.Internal("load settings", err).WithContext("instance_id", instanceID)
	}
	cfg, err := rate.FromSettings(s)
	if err != nil {
		return rate.MethodConfig{}, err
	}
	return cfg, nil
}

// Memory keeps settings in process.
type Memory struct {
	mu   sync.RWMutex
	data map[int]rate.Settings
}

func NewMemory() *Memory {
	return &Memory{data: make(map[int]rate.Settings)}
}

func (m *Memory) Get(_ context.Context, instanceID int) (rate.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[instanceID]
	if !ok {
		return nil, notFound(instanceID)
	}
	return clone(s), nil
}

func (m *Memory) Save(_ context.Context, instanceID int, s rate.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[instanceID] = clone(s)
	return nil
}

func clone(s rate.Settings) rate.Settings {
	out := make(rate.Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func notFound(instanceID int) error {
	return errors.NotFound(resourceName, instanceKey(instanceID)).WithContext("instance_id", instanceID)
}

func instanceKey(instanceID int) string {
	return strconv.Itoa(instanceID)
}
