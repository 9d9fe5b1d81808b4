package database

// Checkpoint folds the WAL back into the main database file and truncates it
func (db *DB) Checkpoint() error {
	_, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}
