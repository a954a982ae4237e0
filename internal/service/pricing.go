package service

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// PricingPolicy decides the retail price (in minor currency units) for an
// imported product when the provider carries no usable price. Fabricating a
// price is a business decision, so the policy is injected rather than
// hard-coded.
type PricingPolicy interface {
	Price(product printful.CatalogProduct, variant *printful.SyncVariant) (int64, error)
}

// variantPrice parses a sync variant's retail price into minor units
func variantPrice(variant *printful.SyncVariant) (int64, bool) {
	if variant == nil || variant.RetailPrice == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(variant.RetailPrice)
	if err != nil || d.IsZero() {
		return 0, false
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart(), true
}

// RandomBandPolicy picks a pseudo-random price within a fixed band when the
// provider has none. The default band matches the admin price tooling,
// 1500 to 5000 minor units.
type RandomBandPolicy struct {
	Min int64
	Max int64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomBandPolicy creates a random-band pricing policy
func NewRandomBandPolicy(min, max int64, seed int64) *RandomBandPolicy {
	if max <= min {
		min, max = 1500, 5000
	}
	return &RandomBandPolicy{
		Min: min,
		Max: max,
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomBandPolicy) Price(_ printful.CatalogProduct, variant *printful.SyncVariant) (int64, error) {
	if amount, ok := variantPrice(variant); ok {
		return amount, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Min + p.rnd.Int63n(p.Max-p.Min), nil
}

// FixedPolicy always falls back to one configured amount
type FixedPolicy struct {
	Amount int64
}

func (p FixedPolicy) Price(_ printful.CatalogProduct, variant *printful.SyncVariant) (int64, error) {
	if amount, ok := variantPrice(variant); ok {
		return amount, nil
	}
	return p.Amount, nil
}

// RejectMissingPolicy refuses to import a product whose provider price is
// absent instead of fabricating one
type RejectMissingPolicy struct{}

func (RejectMissingPolicy) Price(product printful.CatalogProduct, variant *printful.SyncVariant) (int64, error) {
	if amount, ok := variantPrice(variant); ok {
		return amount, nil
	}
	return 0, &errors.ErrPriceUnavailable{ProviderProductID: strconv.FormatInt(product.ID, 10)}
}
