package entities

// RecordKind distinguishes the two filesystem change shapes a patch
// transaction can produce.
type RecordKind string

const (
	// RecordBackup marks an original file renamed aside and replaced by
	// patched content. Rollback deletes the patched file and renames the
	// backup back into place, as a unit.
	RecordBackup RecordKind = "backup"

	// RecordCreated marks a file that did not exist before the transaction.
	// Rollback deletes it.
	RecordCreated RecordKind = "created"
)

// ModificationRecord is one applied filesystem change. The ordered record
// sequence of a transaction is the only state needed to reverse it, and
// must be consumed by rollback exactly once.
type ModificationRecord struct {
	Kind       RecordKind
	Path       string // the patched or created file
	BackupPath string // only set for RecordBackup
}
