//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/domain/repositories"
)

// SpyPatchRepository implements repositories.PatchRepository as a
// configurable spy.
type SpyPatchRepository struct {
	// --- Apply ---
	ApplyRecords []entities.ModificationRecord
	ApplyErr     error
	// spy: plans received
	AppliedPlans []*entities.ModificationPlan

	// --- Rollback ---
	// spy: record sequences received
	RollbackCalls [][]entities.ModificationRecord
}

var _ repositories.PatchRepository = (*SpyPatchRepository)(nil)

func (p *SpyPatchRepository) Apply(
	_ string, plan *entities.ModificationPlan,
) ([]entities.ModificationRecord, error) {
	p.AppliedPlans = append(p.AppliedPlans, plan)
	return p.ApplyRecords, p.ApplyErr
}

func (p *SpyPatchRepository) Rollback(records []entities.ModificationRecord) {
	p.RollbackCalls = append(p.RollbackCalls, records)
}
