package entities

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateMapping is returned when a SKU appears more than once on either side of a mapping.
var ErrDuplicateMapping = errors.New("duplicate SKU mapping")

// MappingPair links one platform SKU to one cloud SKU
type MappingPair struct {
	Platform PlatformSKU `yaml:"platform" json:"platform"`
	Cloud    CloudSKU    `yaml:"cloud" json:"cloud"`
}

// SKUMapping is an immutable bijection between platform SKUs and cloud SKUs.
type SKUMapping struct {
	toCloud    map[PlatformSKU]CloudSKU
	toPlatform map[CloudSKU]PlatformSKU
}

// NewSKUMapping builds a mapping from pairs. Empty SKUs and any SKU repeated on
// either side are rejected, so the result is always a bijection.
func NewSKUMapping(pairs []MappingPair) (*SKUMapping, error) {
	m := &SKUMapping{
		toCloud:    make(map[PlatformSKU]CloudSKU, len(pairs)),
		toPlatform: make(map[CloudSKU]PlatformSKU, len(pairs)),
	}

	for i, pair := range pairs {
		if pair.Platform == "" || pair.Cloud == "" {
			return nil, fmt.Errorf("mapping entry %d: platform and cloud SKU are both required", i+1)
		}
		if existing, ok := m.toCloud[pair.Platform]; ok {
			return nil, fmt.Errorf("%w: platform SKU %s maps to both %s and %s",
				ErrDuplicateMapping, pair.Platform, existing, pair.Cloud)
		}
		if existing, ok := m.toPlatform[pair.Cloud]; ok {
			return nil, fmt.Errorf("%w: cloud SKU %s is mapped from both %s and %s",
				ErrDuplicateMapping, pair.Cloud, existing, pair.Platform)
		}
		m.toCloud[pair.Platform] = pair.Cloud
		m.toPlatform[pair.Cloud] = pair.Platform
	}

	return m, nil
}

// CloudFor returns the cloud SKU mapped from a platform SKU
func (m *SKUMapping) CloudFor(sku PlatformSKU) (CloudSKU, bool) {
	if m == nil {
		return "", false
	}
	cloud, ok := m.toCloud[sku]
	return cloud, ok
}

// PlatformFor returns the platform SKU mapped to a cloud SKU
func (m *SKUMapping) PlatformFor(sku CloudSKU) (PlatformSKU, bool) {
	if m == nil {
		return "", false
	}
	platform, ok := m.toPlatform[sku]
	return platform, ok
}

// CloudSKUs returns every cloud SKU in the mapping, sorted
func (m *SKUMapping) CloudSKUs() []CloudSKU {
	if m == nil {
		return nil
	}
	skus := make([]CloudSKU, 0, len(m.toPlatform))
	for sku := range m.toPlatform {
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i] < skus[j] })
	return skus
}

// Pairs returns the mapping as pairs sorted by cloud SKU
func (m *SKUMapping) Pairs() []MappingPair {
	skus := m.CloudSKUs()
	pairs := make([]MappingPair, 0, len(skus))
	for _, sku := range skus {
		pairs = append(pairs, MappingPair{Platform: m.toPlatform[sku], Cloud: sku})
	}
	return pairs
}

// Len returns the number of mapped pairs
func (m *SKUMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.toCloud)
}
