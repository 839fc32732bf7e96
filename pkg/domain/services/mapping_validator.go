package services

import (
	"fmt"
	"sort"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// MappingValidator checks that a hand-authored SKU mapping is a true bijection
type MappingValidator struct{}

// NewMappingValidator creates a new mapping validator
func NewMappingValidator() *MappingValidator {
	return &MappingValidator{}
}

// MappingValidationResult contains every problem found in a mapping, not just the first
type MappingValidationResult struct {
	Pairs                 int
	DuplicatePlatformSKUs []entities.PlatformSKU
	DuplicateCloudSKUs    []entities.CloudSKU
	// IncompleteEntries holds 1-based positions of pairs missing either side.
	IncompleteEntries []int
	Errors            []string
}

// Valid reports whether the mapping can be used as-is
func (r *MappingValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateMapping reports incomplete entries and SKUs repeated on either side
func (v *MappingValidator) ValidateMapping(pairs []entities.MappingPair) *MappingValidationResult {
	result := &MappingValidationResult{
		Pairs:                 len(pairs),
		DuplicatePlatformSKUs: make([]entities.PlatformSKU, 0),
		DuplicateCloudSKUs:    make([]entities.CloudSKU, 0),
		IncompleteEntries:     make([]int, 0),
		Errors:                make([]string, 0),
	}

	platformCounts := make(map[entities.PlatformSKU]int)
	cloudCounts := make(map[entities.CloudSKU]int)

	for i, pair := range pairs {
		if pair.Platform == "" || pair.Cloud == "" {
			result.IncompleteEntries = append(result.IncompleteEntries, i+1)
			continue
		}
		platformCounts[pair.Platform]++
		cloudCounts[pair.Cloud]++
	}

	for sku, count := range platformCounts {
		if count > 1 {
			result.DuplicatePlatformSKUs = append(result.DuplicatePlatformSKUs, sku)
		}
	}
	for sku, count := range cloudCounts {
		if count > 1 {
			result.DuplicateCloudSKUs = append(result.DuplicateCloudSKUs, sku)
		}
	}
	sort.Slice(result.DuplicatePlatformSKUs, func(i, j int) bool {
		return result.DuplicatePlatformSKUs[i] < result.DuplicatePlatformSKUs[j]
	})
	sort.Slice(result.DuplicateCloudSKUs, func(i, j int) bool {
		return result.DuplicateCloudSKUs[i] < result.DuplicateCloudSKUs[j]
	})

	for _, pos := range result.IncompleteEntries {
		result.Errors = append(result.Errors, fmt.Sprintf("entry %d is missing a platform or cloud SKU", pos))
	}
	for _, sku := range result.DuplicatePlatformSKUs {
		result.Errors = append(result.Errors,
			fmt.Sprintf("platform SKU %s is mapped %d times", sku, platformCounts[sku]))
	}
	for _, sku := range result.DuplicateCloudSKUs {
		result.Errors = append(result.Errors,
			fmt.Sprintf("cloud SKU %s is mapped %d times", sku, cloudCounts[sku]))
	}

	return result
}
