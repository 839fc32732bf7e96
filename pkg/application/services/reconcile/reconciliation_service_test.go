package reconcile

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/stockrecon/pkg/infrastructure/testing"
)

func qty(n int64) entities.Quantity {
	return entities.NewQuantity(n)
}

func newTestService(t *testing.T) *ReconciliationService {
	t.Helper()
	svc, err := NewReconciliationService(nil, testhelpers.ScenarioMapping(), EngineConfig{})
	require.NoError(t, err)
	return svc
}

func TestReconcile_ReferenceScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()

	report, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)

	expected := []entities.SummaryRecord{
		{SKU: DefaultTotalLabel, Primary: qty(5), Other: qty(7), CloudTotal: qty(12), CGTotal: qty(10), GrandTotal: qty(22), IsTotal: true},
		{SKU: "WS001-50-10", Primary: qty(0), Other: qty(4), CloudTotal: qty(4), CGTotal: qty(0), GrandTotal: qty(4)},
		{SKU: "WS007-192-12", PlatformSKU: "WS007-30-KING", Primary: qty(5), Other: qty(3), CloudTotal: qty(8), CGTotal: qty(10), GrandTotal: qty(18)},
		{SKU: "WS008-99-12", PlatformSKU: "WS008-30-TWIN", Primary: qty(0), Other: qty(0), CloudTotal: qty(0), CGTotal: qty(0), GrandTotal: qty(0)},
	}
	if diff := cmp.Diff(expected, report.Rows); diff != "" {
		t.Fatalf("unexpected report rows (-want +got):\n%s", diff)
	}

	require.Equal(t, 3, report.Statistics.SKUCount)
	require.True(t, report.Statistics.GrandTotal.Equal(qty(22)))
	require.True(t, report.Statistics.CGTotal.Equal(qty(10)))
	require.True(t, report.Statistics.CloudTotal.Equal(qty(12)))

	require.Len(t, report.Unmapped, 1)
	require.Equal(t, entities.PlatformSKU("WS999-UNMAPPED"), report.Unmapped[0].PlatformSKU)
	require.True(t, report.Unmapped[0].Available.Equal(qty(6)))

	total, ok := report.TotalRow()
	require.True(t, ok)
	require.True(t, total.IsTotal)
	require.Len(t, report.Records(), 3)
}

func TestReconcile_SingleRecordTotalMatchesRecord(t *testing.T) {
	t.Parallel()

	mapping, err := entities.NewSKUMapping([]entities.MappingPair{{Platform: "WS007-30-KING", Cloud: "WS007-192-12"}})
	require.NoError(t, err)
	svc, err := NewReconciliationService(nil, mapping, EngineConfig{})
	require.NoError(t, err)

	cloudRepo := memory.NewCloudInventoryRepository(2)
	cloudRepo.AddStockRow(entities.CloudStockRow{SKU: "WS007-192-12", Warehouse: "X005-CA", DropshipOnHand: qty(5)})
	cloudRepo.AddStockRow(entities.CloudStockRow{SKU: "WS007-192-12", Warehouse: "X005-TX", DropshipOnHand: qty(3)})
	cgRepo := memory.NewCGInventoryRepository(2)
	cgRepo.AddStockRow(entities.CGStockRow{SKU: "WS007-30-KING", WarehouseType: "Castlegate", Available: qty(10)})
	cgRepo.AddStockRow(entities.CGStockRow{SKU: "WS007-30-KING", WarehouseType: "Other", Available: qty(999)})

	report, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	record := report.Rows[1]
	total := report.Rows[0]
	for i, q := range []entities.Quantity{qty(5), qty(3), qty(8), qty(10), qty(18)} {
		require.True(t, record.Quantities()[i].Equal(q), "record column %d: want %s got %s", i, q, record.Quantities()[i])
		require.True(t, total.Quantities()[i].Equal(q), "total column %d: want %s got %s", i, q, total.Quantities()[i])
	}
	require.Empty(t, report.Unmapped)
}

func TestReconcile_ArithmeticInvariants(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()

	report, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)

	sums := make([]entities.Quantity, 5)
	for _, r := range report.Records() {
		require.False(t, r.IsTotal)
		require.True(t, r.CloudTotal.Equal(r.Primary.Add(r.Other)), "cloud total of %s", r.SKU)
		require.True(t, r.GrandTotal.Equal(r.CloudTotal.Add(r.CGTotal)), "grand total of %s", r.SKU)
		for i, q := range r.Quantities() {
			sums[i] = sums[i].Add(q)
		}
	}

	total, ok := report.TotalRow()
	require.True(t, ok)
	for i, q := range total.Quantities() {
		require.True(t, q.Equal(sums[i]), "total column %d", i)
	}
}

func TestReconcile_MappingCompleteness(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	report, err := svc.Reconcile(context.Background(), memory.NewCloudInventoryRepository(0), memory.NewCGInventoryRepository(0))
	require.NoError(t, err)

	companions := map[entities.PlatformSKU]bool{}
	for _, r := range report.Records() {
		companions[r.PlatformSKU] = true
		require.True(t, r.GrandTotal.IsZero())
	}
	for _, pair := range testhelpers.ScenarioMappingPairs() {
		require.True(t, companions[pair.Platform], "platform SKU %s missing from report", pair.Platform)
	}
}

func TestReconcile_MissingCGSource(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	cloudRepo, _ := testhelpers.BuildScenarioRepositories()

	report, err := svc.Reconcile(context.Background(), cloudRepo, nil)
	require.NoError(t, err)
	require.NotEmpty(t, report.Rows)

	for _, r := range report.Rows {
		require.True(t, r.CGTotal.IsZero(), "CG total of %s", r.SKU)
		require.True(t, r.GrandTotal.Equal(r.CloudTotal), "grand total of %s", r.SKU)
	}
	require.Empty(t, report.Unmapped)
}

func TestReconcile_MissingCloudSource(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, cgRepo := testhelpers.BuildScenarioRepositories()

	report, err := svc.Reconcile(context.Background(), nil, cgRepo)
	require.NoError(t, err)

	// Only mapped SKUs remain when there is no cloud source.
	require.Equal(t, 2, report.Statistics.SKUCount)
	require.True(t, report.Statistics.CloudTotal.IsZero())
	require.True(t, report.Statistics.CGTotal.Equal(qty(10)))
}

func TestReconcile_IsDeterministic(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()

	first, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)
	second, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("reports differ between runs (-first +second):\n%s", diff)
	}
}

func TestReconcile_EmptyUniverse(t *testing.T) {
	t.Parallel()

	mapping, err := entities.NewSKUMapping(nil)
	require.NoError(t, err)
	svc, err := NewReconciliationService(nil, mapping, EngineConfig{})
	require.NoError(t, err)

	report, err := svc.Reconcile(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, report.Rows)
	require.Equal(t, 0, report.Statistics.SKUCount)
	_, ok := report.TotalRow()
	require.False(t, ok)
}

func TestReconcile_CancelledContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Reconcile(ctx, cloudRepo, cgRepo)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, report)
}

func TestReconcile_CustomConfig(t *testing.T) {
	t.Parallel()

	svc, err := NewReconciliationService(nil, testhelpers.ScenarioMapping(), EngineConfig{
		PrimaryWarehouse:     "X005-TX",
		CountedWarehouseType: "Other",
		TotalLabel:           "合计",
	})
	require.NoError(t, err)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()

	report, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)

	require.Equal(t, entities.CloudSKU("合计"), report.Rows[0].SKU)
	king := report.Rows[2]
	require.Equal(t, entities.CloudSKU("WS007-192-12"), king.SKU)
	require.True(t, king.Primary.Equal(qty(3)))
	require.True(t, king.Other.Equal(qty(5)))
	require.True(t, king.CGTotal.Equal(qty(999)))
	// WS999-UNMAPPED has no "Other" rows, so nothing is left out.
	require.Empty(t, report.Unmapped)
}

func TestNewReconciliationService_RequiresMapping(t *testing.T) {
	t.Parallel()

	_, err := NewReconciliationService(nil, nil, EngineConfig{})
	require.Error(t, err)

	svc := newTestService(t)
	cfg := svc.Config()
	require.Equal(t, DefaultPrimaryWarehouse, cfg.PrimaryWarehouse)
	require.Equal(t, DefaultCountedWarehouseType, cfg.CountedWarehouseType)
	require.Equal(t, DefaultTotalLabel, cfg.TotalLabel)
	require.Equal(t, 2, svc.Mapping().Len())
}
