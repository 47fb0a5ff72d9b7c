// Package dehyphenate joins words split across lines by a hyphen, as
// produced by PDF text layers ("reve-\nnue" becomes "revenue").
package dehyphenate

import (
	"context"
	"regexp"
)

// lineBreakHyphen matches a letter, a hyphen at line end, and a lowercase
// letter starting the next line. Capitalised continuations are left alone
// since they are usually real compounds ("Jean-\nPaul").
var lineBreakHyphen = regexp.MustCompile(`(\p{L})-[ \t]*\r?\n[ \t]*(\p{Ll})`)

// Processor removes line-break hyphenation.
type Processor struct{}

// New creates a new dehyphenation processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "dehyphenate"
}

// Process joins hyphenated line breaks.
func (p *Processor) Process(_ context.Context, content string) (string, error) {
	return lineBreakHyphen.ReplaceAllString(content, "$1$2"), nil
}
