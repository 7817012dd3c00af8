package repositories

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// PatchRepository applies a modification plan to a working tree with
// backup-and-rollback semantics. It is the sole writer of tracked build
// files while a transaction is outstanding.
type PatchRepository interface {
	// Apply performs the plan's changes in fixed order (Makefile, then
	// CMakeLists.txt, then missing files) and returns one record per
	// filesystem change, in operation order. On a write failure the
	// remaining steps are skipped and the records applied so far are
	// returned alongside the error so the caller can roll them back.
	Apply(rootPath string, plan *entities.ModificationPlan) ([]entities.ModificationRecord, error)

	// Rollback reverses the given records best-effort: a failure on one
	// record is logged and does not abort the remaining ones. A record
	// sequence must never be rolled back more than once.
	Rollback(records []entities.ModificationRecord)
}
