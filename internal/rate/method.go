package rate

import (
	"sort"
	"strings"
	"sync"
)

// Destination is the address part of a host package that matters here.
type Destination struct {
	Postcode string `json:"postcode"`
	Country  string `json:"country,omitempty"`
}

// Package is the host's shipping package descriptor.
type Package struct {
	Destination Destination `json:"destination"`
}

// Method is what a host registers in its shipping method registry.
type Method interface {
	ID() string
	Title() string
	Calculate(pkg Package) []Offer
}

// Factory builds a Method for one configured instance.
type Factory func(cfg MethodConfig, opts ...Option) Method

// ZipMethod restricts a flat rate to a configured list of postal codes.
type ZipMethod struct {
	cfg  MethodConfig
	eval *Evaluator
}

func NewZipMethod(cfg MethodConfig, opts ...Option) Method {
	return &ZipMethod{cfg: cfg, eval: NewEvaluator(MethodID, opts...)}
}

func (m *ZipMethod) ID() string    { return m.eval.ID() }
func (m *ZipMethod) Title() string { return m.cfg.Title }

// Calculate returns at most one offer.
func (m *ZipMethod) Calculate(pkg Package) []Offer {
	if o, ok := m.eval.Evaluate(pkg.Destination.Postcode, m.cfg); ok {
		return []Offer{o}
	}
	return nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{MethodID: NewZipMethod}
)

// Register adds or replaces a factory under name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeName(name)] = f
}

// Names lists registered method names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewByName returns a Method by registered name.
// Empty or unknown names fall back to the ZIP method.
func NewByName(name string, cfg MethodConfig, opts ...Option) Method {
	registryMu.RLock()
	f, ok := registry[normalizeName(name)]
	registryMu.RUnlock()
	if !ok {
		f = NewZipMethod
	}
	return f(cfg, opts...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
