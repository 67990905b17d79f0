package duckdb

import "github.com/tinytelemetry/smileguide/internal/model"

// Store satisfies every persistence contract the application depends on.
var (
	_ model.ValueStore   = (*Store)(nil)
	_ model.UserStore    = (*Store)(nil)
	_ model.SymptomStore = (*Store)(nil)
)
