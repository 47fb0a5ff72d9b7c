// Package normalisers turns uploaded document bytes into plain text.
//
// Each sub-package handles one family of MIME types. The Registry in this
// package picks the highest priority normaliser for a document's MIME type;
// NewDefaultRegistry wires every built-in normaliser.
package normalisers
