package sqlite

// Schema DDL. Every row is scoped to the snapshot it was exported in.
const (
	createSnapshots = `CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    module TEXT NOT NULL,
    version TEXT NOT NULL,
    source TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createSections = `CREATE TABLE IF NOT EXISTS sections (
    snapshot_id TEXT NOT NULL,
    section TEXT NOT NULL,
    kind TEXT NOT NULL,
    name TEXT,
    isec INTEGER,
    item INTEGER,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, section),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(snapshot_id) ON DELETE CASCADE
);`

	createFields = `CREATE TABLE IF NOT EXISTS fields (
    snapshot_id TEXT NOT NULL,
    section TEXT NOT NULL,
    key TEXT NOT NULL,
    state TEXT NOT NULL,
    value TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, section, key),
    FOREIGN KEY (snapshot_id, section) REFERENCES sections(snapshot_id, section) ON DELETE CASCADE
);`

	createLinks = `CREATE TABLE IF NOT EXISTS links (
    snapshot_id TEXT NOT NULL,
    request TEXT NOT NULL,
    kind TEXT NOT NULL,
    target TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, request, kind),
    FOREIGN KEY (snapshot_id, request) REFERENCES sections(snapshot_id, section) ON DELETE CASCADE,
    FOREIGN KEY (snapshot_id, target) REFERENCES sections(snapshot_id, section) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxSectionsKindName = `CREATE INDEX IF NOT EXISTS idx_sections_kind_name ON sections(snapshot_id, kind, name);`
	idxSectionsStash    = `CREATE INDEX IF NOT EXISTS idx_sections_stash ON sections(snapshot_id, isec, item);`
	idxLinksTarget      = `CREATE INDEX IF NOT EXISTS idx_links_target ON links(snapshot_id, target);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSnapshots,
	createSections,
	createFields,
	createLinks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSectionsKindName,
	idxSectionsStash,
	idxLinksTarget,
}
