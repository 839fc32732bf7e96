// Package mapping provides the platform-to-cloud SKU table, either the built-in
// one or a YAML file of the form:
//
//	mappings:
//	  - platform: WS007-30-KING
//	    cloud: WS007-192-12
package mapping

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/services"
)

// File is the on-disk mapping document
type File struct {
	Mappings []entities.MappingPair `yaml:"mappings"`
}

// Parse decodes a mapping document. SKUs are trimmed; validation is left to Load.
func Parse(data []byte) ([]entities.MappingPair, error) {
	var doc File
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}

	pairs := make([]entities.MappingPair, len(doc.Mappings))
	for i, p := range doc.Mappings {
		pairs[i] = entities.MappingPair{
			Platform: entities.PlatformSKU(strings.TrimSpace(string(p.Platform))),
			Cloud:    entities.CloudSKU(strings.TrimSpace(string(p.Cloud))),
		}
	}
	return pairs, nil
}

// LoadFile reads the mapping pairs from a YAML file
func LoadFile(path string) ([]entities.MappingPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	pairs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// Pairs returns the pairs from path, or the built-in pairs when path is empty
func Pairs(path string) ([]entities.MappingPair, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

// Load reads and validates a mapping. The validation result is returned even
// when the mapping is rejected, so callers can report every problem.
func Load(path string) (*entities.SKUMapping, *services.MappingValidationResult, error) {
	pairs, err := Pairs(path)
	if err != nil {
		return nil, nil, err
	}

	result := services.NewMappingValidator().ValidateMapping(pairs)
	mapping, err := entities.NewSKUMapping(pairs)
	if err != nil {
		return nil, result, fmt.Errorf("invalid SKU mapping (%s): %w", strings.Join(result.Errors, "; "), err)
	}

	return mapping, result, nil
}

// Marshal encodes pairs as a mapping document
func Marshal(pairs []entities.MappingPair) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(File{Mappings: pairs}, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping: %w", err)
	}
	return data, nil
}
