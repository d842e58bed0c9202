package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fetch_records (
	id            TEXT PRIMARY KEY,
	activation_id TEXT NOT NULL,
	endpoint      TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	status_code   INTEGER NOT NULL DEFAULT 0,
	item_count    INTEGER NOT NULL DEFAULT 0,
	error         TEXT NOT NULL DEFAULT '',
	started_at    DATETIME NOT NULL,
	finished_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fetch_records_finished_at ON fetch_records(finished_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE UNIQUE INDEX IF NOT EXISTS idx_fetch_records_activation ON fetch_records(activation_id);
CREATE INDEX IF NOT EXISTS idx_fetch_records_outcome ON fetch_records(outcome);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
