package sqlite

// Schema DDL for the variables store.
const (
	createVariables = `CREATE TABLE IF NOT EXISTS variables (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createVariables,
}
