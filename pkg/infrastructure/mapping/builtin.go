package mapping

import "github.com/vsinha/stockrecon/pkg/domain/entities"

// builtinPairs is the mapping used when no mapping file is configured
var builtinPairs = []entities.MappingPair{
	{Platform: "WS007-30-KING", Cloud: "WS007-192-12"},
	{Platform: "WS007-30-QUEEN", Cloud: "WS007-152-12"},
	{Platform: "WS007-30-FULL", Cloud: "WS007-137-12"},
	{Platform: "WS007-30-TWIN", Cloud: "WS007-99-12"},
	{Platform: "WS007-26-KING", Cloud: "WS007-192-10"},
	{Platform: "WS007-26-QUEEN", Cloud: "WS007-152-10"},
	{Platform: "WS007-26-FULL", Cloud: "WS007-137-10"},
	{Platform: "WS007-35-KING", Cloud: "WS007-192-14"},
	{Platform: "WS007-35-QUEEN", Cloud: "WS007-152-14"},
	{Platform: "WS007-35-FULL", Cloud: "WS007-137-14"},
	{Platform: "WS007-35-TWIN", Cloud: "WS007-99-14"},

	{Platform: "WS008-30-KING", Cloud: "WS008-192-12"},
	{Platform: "WS008-30-QUEEN", Cloud: "WS008-152-12"},
	{Platform: "WS008-30-FULL", Cloud: "WS008-137-12"},
	{Platform: "WS008-30-TWIN", Cloud: "WS008-99-12"},
	{Platform: "WS008-26-KING", Cloud: "WS008-192-10"},
	{Platform: "WS008-26-QUEEN", Cloud: "WS008-152-10"},
	{Platform: "WS008-26-FULL", Cloud: "WS008-137-10"},
	{Platform: "WS008-35-KING", Cloud: "WS008-192-14"},
	{Platform: "WS008-35-QUEEN", Cloud: "WS008-152-14"},
	{Platform: "WS008-35-FULL", Cloud: "WS008-137-14"},
	{Platform: "WS008-35-TWIN", Cloud: "WS008-99-14"},
}

// Builtin returns a copy of the built-in mapping pairs
func Builtin() []entities.MappingPair {
	pairs := make([]entities.MappingPair, len(builtinPairs))
	copy(pairs, builtinPairs)
	return pairs
}
