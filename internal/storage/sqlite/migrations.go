package sqlite

import "database/sql"

// schema sets up the snapshot table. It runs on startup so the table always
// exists. The table holds at most one row: the latest serialized AppState.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    payload TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
