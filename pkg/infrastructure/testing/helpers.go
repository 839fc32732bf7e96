package testing

import (
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/memory"
)

// ScenarioMappingPairs is a small mapping used across tests: two mapped
// products, one of which has no stock anywhere.
func ScenarioMappingPairs() []entities.MappingPair {
	return []entities.MappingPair{
		{Platform: "WS007-30-KING", Cloud: "WS007-192-12"},
		{Platform: "WS008-30-TWIN", Cloud: "WS008-99-12"},
	}
}

// ScenarioMapping builds the mapping from ScenarioMappingPairs
func ScenarioMapping() *entities.SKUMapping {
	mapping, err := entities.NewSKUMapping(ScenarioMappingPairs())
	if err != nil {
		panic(err)
	}
	return mapping
}

// BuildScenarioTables returns raw cloud and CG tables for the reference scenario:
//
//   - WS007-192-12: 5 at X005-CA, 3 at X005-TX; CG WS007-30-KING has 10 at
//     Castlegate and 999 at another warehouse type.
//   - WS001-50-10: cloud-only, 4 at X005-TX.
//   - WS008-99-12: mapped, no rows in either source.
//   - WS999-UNMAPPED: CG-only with no mapping entry, 6 at Castlegate.
func BuildScenarioTables() (*entities.Table, *entities.Table) {
	cloud := &entities.Table{
		Name: "cloud",
		Columns: []string{
			"Fnsku", "仓库名称", "代发途中", "代发库存", "中转途中", "10天销量", "30天销量", "库龄(天)",
		},
		Rows: [][]string{
			{"WS007-192-12", "X005-CA", "0", "5", "1", "2", "9", "30"},
			{"WS007-192-12", "X005-TX", "2", "3", "0", "1", "4", "45"},
			{"WS001-50-10", "X005-TX", "", "4", "", "", "", "N/A"},
		},
	}

	cg := &entities.Table{
		Name:    "cg",
		Columns: []string{"Part Number", "Warehouse Type", "In Stock", "Available", "Order Past 90 Days"},
		Rows: [][]string{
			{"WS007-30-KING", "Castlegate", "12", "10", "40"},
			{"WS007-30-KING", "Other", "999", "999", "0"},
			{"WS999-UNMAPPED", "Castlegate", "6", "6", "1"},
		},
	}

	return cloud, cg
}

// BuildScenarioRepositories loads the reference scenario into memory repositories
func BuildScenarioRepositories() (*memory.CloudInventoryRepository, *memory.CGInventoryRepository) {
	cloudRepo := memory.NewCloudInventoryRepository(3)
	cloudRepo.AddStockRow(cloudRow("WS007-192-12", "X005-CA", 5))
	cloudRepo.AddStockRow(cloudRow("WS007-192-12", "X005-TX", 3))
	cloudRepo.AddStockRow(cloudRow("WS001-50-10", "X005-TX", 4))

	cgRepo := memory.NewCGInventoryRepository(3)
	cgRepo.AddStockRow(cgRow("WS007-30-KING", "Castlegate", 10))
	cgRepo.AddStockRow(cgRow("WS007-30-KING", "Other", 999))
	cgRepo.AddStockRow(cgRow("WS999-UNMAPPED", "Castlegate", 6))

	return cloudRepo, cgRepo
}

func cloudRow(sku entities.CloudSKU, warehouse string, qty int64) entities.CloudStockRow {
	row, err := entities.NewCloudStockRow(sku, warehouse, entities.NewQuantity(qty))
	if err != nil {
		panic(err)
	}
	return *row
}

func cgRow(sku entities.PlatformSKU, warehouseType string, qty int64) entities.CGStockRow {
	row, err := entities.NewCGStockRow(sku, warehouseType, entities.NewQuantity(qty))
	if err != nil {
		panic(err)
	}
	return *row
}
