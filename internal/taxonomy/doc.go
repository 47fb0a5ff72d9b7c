// Package taxonomy reads and writes taxonomy files.
//
// Three formats are supported. JSON and YAML use the object form, one key
// per canonical term mapped to its alias list:
//
//	{"Revenue": ["revenue", "sales"], "Profit": ["profit"]}
//
// TOML uses an array of tables so that term order is explicit:
//
//	name = "finance"
//
//	[[term]]
//	name = "Revenue"
//	aliases = ["revenue", "sales"]
//
// Term order in the file is the presentation order and is preserved for
// every format. Each document is checked against an embedded JSON Schema
// before it is decoded; violations are reported as *SchemaError, which
// matches domain.ErrInvalidTaxonomy.
package taxonomy
