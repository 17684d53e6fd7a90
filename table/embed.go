package table

import "embed"

// builtinTablesFS embeds the built-in automaton tables.
//
//go:embed tables/*.yml
var builtinTablesFS embed.FS
