// Package keywords is the keyword occurrence engine.
//
// Given extracted text and a taxonomy of canonical terms with alias
// strings, it counts whole-word alias occurrences, rolls them up per
// term and renders an ordered, spreadsheet-indexed result table.
//
// The functions here are pure: they never read files, never mutate the
// taxonomy and give identical output for identical input. Aggregator adds
// an optional worker pool for large taxonomies; results are still returned
// in taxonomy order.
package keywords
