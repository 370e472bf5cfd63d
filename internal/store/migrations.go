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

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL CHECK(length(trim(name)) > 0),
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS checkpoints (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title      TEXT NOT NULL CHECK(length(trim(title)) > 0),
	details    TEXT NOT NULL DEFAULT '',
	is_done    INTEGER NOT NULL DEFAULT 0 CHECK(is_done IN (0, 1)),
	sort_order INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);
CREATE INDEX IF NOT EXISTS idx_checkpoints_project_order ON checkpoints(project_id, sort_order);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
