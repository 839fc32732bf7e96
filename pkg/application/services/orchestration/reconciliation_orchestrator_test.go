package orchestration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockrecon/pkg/application/services/normalize"
	"github.com/vsinha/stockrecon/pkg/application/services/reconcile"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	testhelpers "github.com/vsinha/stockrecon/pkg/infrastructure/testing"
)

func newTestOrchestrator(t *testing.T) *ReconciliationOrchestrator {
	t.Helper()
	svc, err := reconcile.NewReconciliationService(nil, testhelpers.ScenarioMapping(), reconcile.EngineConfig{})
	require.NoError(t, err)
	return NewReconciliationOrchestrator(nil, svc, DefaultColumns())
}

func TestReconciliationOrchestrator_Run(t *testing.T) {
	t.Parallel()

	cloud, cg := testhelpers.BuildScenarioTables()
	report, err := newTestOrchestrator(t).Run(context.Background(), cloud, cg)
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	king := report.Rows[2]
	require.Equal(t, entities.CloudSKU("WS007-192-12"), king.SKU)
	require.Equal(t, entities.PlatformSKU("WS007-30-KING"), king.PlatformSKU)
	for i, want := range []int64{5, 3, 8, 10, 18} {
		require.True(t, king.Quantities()[i].Equal(entities.NewQuantity(want)), "column %d: got %s", i, king.Quantities()[i])
	}
	require.Equal(t, "22", report.Statistics.GrandTotal.String())

	require.Len(t, report.Sources, 2)
	require.Equal(t, "cloud", report.Sources[0].Source)
	require.Equal(t, 3, report.Sources[0].Rows)
	// "N/A" in the age column
	require.Equal(t, map[string]int{"库龄(天)": 1}, report.Sources[0].Malformed)
	require.Equal(t, "cg", report.Sources[1].Source)
	require.Zero(t, report.Sources[1].MalformedTotal())

	require.Len(t, report.Unmapped, 1)
}

func TestReconciliationOrchestrator_MissingSource(t *testing.T) {
	t.Parallel()

	cloud, cg := testhelpers.BuildScenarioTables()
	o := newTestOrchestrator(t)

	_, err := o.Run(context.Background(), cloud, nil)
	require.ErrorIs(t, err, ErrMissingSource)
	_, err = o.Run(context.Background(), nil, cg)
	require.ErrorIs(t, err, ErrMissingSource)
}

func TestReconciliationOrchestrator_MissingColumn(t *testing.T) {
	t.Parallel()

	cloud, cg := testhelpers.BuildScenarioTables()
	cg.Columns[1] = "Type"

	_, err := newTestOrchestrator(t).Run(context.Background(), cloud, cg)
	require.ErrorIs(t, err, normalize.ErrMissingColumn)
}
