package prettyhelp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLineTooLong is returned when a single line cannot fit on an empty page.
// Lines are never split or truncated; callers must shorten them.
var ErrLineTooLong = errors.New("line exceeds maximum page size")

// DefaultMaxSize is the default page size for line-mode pagination, matching
// Discord's message content limit.
const DefaultMaxSize = 2000

// LinePaginator packs whole lines of text into pages wrapped in a prefix and
// suffix (three backticks by default). Unlike Paginator it produces plain
// text pages, not embeds.
type LinePaginator struct {
	Prefix  string
	Suffix  string
	MaxSize int

	pages   []string
	current []string
	count   int
}

// NewLinePaginator creates a line paginator with code-block fencing and the
// default page size.
func NewLinePaginator() *LinePaginator {
	p := &LinePaginator{
		Prefix:  "```",
		Suffix:  "```",
		MaxSize: DefaultMaxSize,
	}
	p.Clear()
	return p
}

// Clear resets the paginator to have no pages.
func (p *LinePaginator) Clear() {
	p.pages = nil
	p.openPage()
}

func (p *LinePaginator) openPage() {
	if p.Prefix != "" {
		p.current = []string{p.Prefix}
		p.count = len(p.Prefix) + 1
	} else {
		p.current = nil
		p.count = 0
	}
}

// MaxLineLength returns the largest line that can fit on an empty page,
// accounting for the fencing and its newlines.
func (p *LinePaginator) MaxLineLength() int {
	return p.MaxSize - len(p.Prefix) - len(p.Suffix) - 2
}

// AddLine adds a line to the current page, sealing it and opening a new one
// if the line would not fit. An emptyAfter line is followed by a blank line.
func (p *LinePaginator) AddLine(line string, emptyAfter bool) error {
	maxLine := p.MaxLineLength()
	if len(line) > maxLine {
		return fmt.Errorf("%w (%d > %d)", ErrLineTooLong, len(line), maxLine)
	}

	if p.count+len(line)+1 > p.MaxSize-len(p.Suffix) {
		p.closePage()
	}

	p.count += len(line) + 1
	p.current = append(p.current, line)

	if emptyAfter {
		p.current = append(p.current, "")
		p.count++
	}
	return nil
}

func (p *LinePaginator) closePage() {
	if p.Suffix != "" {
		p.current = append(p.current, p.Suffix)
	}
	p.pages = append(p.pages, strings.Join(p.current, "\n"))
	p.openPage()
}

// hasContent reports whether the current page holds anything beyond the prefix.
func (p *LinePaginator) hasContent() bool {
	if p.Prefix != "" {
		return len(p.current) > 1
	}
	return len(p.current) > 0
}

// Pages returns the rendered pages, sealing the open page if it has content.
func (p *LinePaginator) Pages() []string {
	if p.hasContent() {
		p.closePage()
	}
	return p.pages
}
