package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const (
	backupSuffix    = ".bak"
	makefileName    = "Makefile"
	cmakeName       = "CMakeLists.txt"
	makefileComment = "# Gcov Coverage Flags"
	cmakeComment    = "# Gcov Coverage Configuration"
	createdFileMode = 0o644
	createdDirsMode = 0o755
)

// PatchRepository applies modification plans with rename-to-backup semantics
// so every run can be reversed from its record sequence alone.
type PatchRepository struct{}

// NewPatchRepository creates a new patch transaction manager.
func NewPatchRepository() *PatchRepository {
	return &PatchRepository{}
}

var _ domainRepos.PatchRepository = (*PatchRepository)(nil)

// Apply performs the plan in fixed order: Makefile changes, CMakeLists
// changes, then missing files. The returned records are in operation order;
// on failure they cover exactly what was applied before the failing step.
func (it *PatchRepository) Apply(
	rootPath string,
	plan *entities.ModificationPlan,
) ([]entities.ModificationRecord, error) {
	var records []entities.ModificationRecord

	if len(plan.MakefileChanges) > 0 {
		record, err := appendToBuildFile(
			filepath.Join(rootPath, makefileName), makefileComment, plan.MakefileChanges,
		)
		if record != nil {
			records = append(records, *record)
		}
		if err != nil {
			return records, err
		}
	}

	if len(plan.CmakeChanges) > 0 {
		record, err := appendToBuildFile(
			filepath.Join(rootPath, cmakeName), cmakeComment, plan.CmakeChanges,
		)
		if record != nil {
			records = append(records, *record)
		}
		if err != nil {
			return records, err
		}
	}

	for _, missing := range plan.MissingFiles {
		target := filepath.Join(rootPath, missing.Path)
		if err := os.MkdirAll(filepath.Dir(target), createdDirsMode); err != nil {
			return records, fmt.Errorf("failed to create parent dirs for %q: %w", missing.Path, err)
		}
		// Overwriting an existing file here is an accepted risk; the record
		// still deletes it on rollback.
		if err := os.WriteFile(target, []byte(missing.Content), createdFileMode); err != nil {
			return records, fmt.Errorf("failed to create file %q: %w", missing.Path, err)
		}
		records = append(records, entities.ModificationRecord{
			Kind: entities.RecordCreated,
			Path: target,
		})
	}

	return records, nil
}

// appendToBuildFile patches an existing build file by renaming it aside and
// rewriting it with the change lines appended, or creates it outright when
// absent. The returned record reflects whatever operation was started, even
// when the subsequent write fails, so rollback stays possible.
func appendToBuildFile(
	path, comment string,
	changes []string,
) (*entities.ModificationRecord, error) {
	joined := strings.Join(changes, "\n")

	if _, err := os.Stat(path); err != nil {
		// No original to preserve: create directly, rollback deletes it.
		if writeErr := os.WriteFile(path, []byte(joined), createdFileMode); writeErr != nil {
			return nil, fmt.Errorf("failed to create %q: %w", path, writeErr)
		}
		return &entities.ModificationRecord{
			Kind: entities.RecordCreated,
			Path: path,
		}, nil
	}

	backupPath := path + backupSuffix
	if err := os.Rename(path, backupPath); err != nil {
		return nil, fmt.Errorf("failed to back up %q: %w", path, err)
	}
	record := &entities.ModificationRecord{
		Kind:       entities.RecordBackup,
		Path:       path,
		BackupPath: backupPath,
	}

	original, err := os.ReadFile(backupPath)
	if err != nil {
		return record, fmt.Errorf("failed to read backup %q: %w", backupPath, err)
	}

	patched := string(original) + "\n\n" + comment + "\n" + joined
	if err := os.WriteFile(path, []byte(patched), createdFileMode); err != nil {
		return record, fmt.Errorf("failed to write patched %q: %w", path, err)
	}

	return record, nil
}

// Rollback reverses the records best-effort. A failure on one record is
// logged and does not block processing of the remaining ones: the
// transaction guarantees "attempt full reversal", not "atomic reversal".
func (it *PatchRepository) Rollback(records []entities.ModificationRecord) {
	for _, record := range records {
		switch record.Kind {
		case entities.RecordBackup:
			if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
				logger.Warnf("Rollback: failed to remove patched file %q: %v", record.Path, err)
			}
			if err := os.Rename(record.BackupPath, record.Path); err != nil {
				logger.Warnf("Rollback: failed to restore %q from backup: %v", record.Path, err)
			}

		case entities.RecordCreated:
			if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
				logger.Warnf("Rollback: failed to remove created file %q: %v", record.Path, err)
			}
		}
	}
}
