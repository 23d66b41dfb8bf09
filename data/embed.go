package data

import (
	_ "embed"
)

// The three bundled catalog documents, refreshed out of band from the
// marketplace backend export.

//go:embed assets/categories.json
var CategoriesJSON string

//go:embed assets/assign.json
var AssignJSON string

//go:embed assets/attributes.json
var AttributesJSON string
