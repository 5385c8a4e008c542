package rate

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"zipshipping/internal/postcode"
)

// MethodID is the fixed identifier of the ZIP restricted shipping method.
const MethodID = "cz_zip_shipping"

// TaxMode tells the host how to calculate tax on an offer.
type TaxMode string

const TaxPerItem TaxMode = "per_item"

// MethodConfig is the typed form of one method instance's settings.
// Conversion from the host's string settings happens once, in FromSettings.
type MethodConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Title          string `json:"title" yaml:"title"`
	Cost           string `json:"cost" yaml:"cost"`
	AllowedZipsRaw string `json:"allowed_zips" yaml:"allowed_zips"`
}

// Offer is a priced shipping option handed back to the host.
type Offer struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Cost           string  `json:"cost"`
	TaxMode        TaxMode `json:"calc_tax"`
	MatchedPattern string  `json:"matched_pattern,omitempty"`
}

// Amount parses the configured cost. Evaluate forwards cost verbatim, so the
// error case is only reachable for settings that bypassed ValidateCost.
func (o Offer) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(o.Cost))
}

// Evaluator decides whether a destination qualifies for a method instance.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	id    string
	cache *postcode.Cache
	log   *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCache reuses parsed allow-lists across calls.
func WithCache(c *postcode.Cache) Option {
	return func(e *Evaluator) { e.cache = c }
}

// WithLogger sets the logger used for debug tracing of decisions.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) { e.log = l }
}

func NewEvaluator(id string, opts ...Option) *Evaluator {
	if strings.TrimSpace(id) == "" {
		id = MethodID
	}
	e := &Evaluator{id: id, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the identifier stamped on every offer.
func (e *Evaluator) ID() string { return e.id }

func (e *Evaluator) patterns(raw string) postcode.PatternSet {
	if e.cache != nil {
		return e.cache.Get(raw)
	}
	return postcode.Parse(raw)
}

// Evaluate returns an offer when cfg is enabled and destination satisfies one of
// its allow patterns. It never fails; a disabled method or no match yields false.
func (e *Evaluator) Evaluate(destination string, cfg MethodConfig) (Offer, bool) {
	if !cfg.Enabled {
		return Offer{}, false
	}
	dest := postcode.Normalize(destination)
	p, ok := e.patterns(cfg.AllowedZipsRaw).Match(dest)
	if !ok {
		e.log.Debug("postcode not allowed", zap.String("method", e.id), zap.String("postcode", dest))
		return Offer{}, false
	}
	e.log.Debug("postcode allowed",
		zap.String("method", e.id),
		zap.String("postcode", dest),
		zap.String("pattern", p.Raw),
		zap.Stringer("kind", p.Kind),
	)
	return Offer{
		ID:             e.id,
		Label:          cfg.Title,
		Cost:           cfg.Cost,
		TaxMode:        TaxPerItem,
		MatchedPattern: p.Raw,
	}, true
}
