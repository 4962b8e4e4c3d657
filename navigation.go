package prettyhelp

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/unicode/runenames"
)

// Navigation maps the three logical help-menu actions to emoji. An emoji can
// be given in several ways:
//   - plain: "👍"
//   - unicode escape: "\U0001F44D"
//   - unicode name: "\N{THUMBS UP SIGN}"
//   - custom discord emoji: ":custom_emoji:8675309"
type Navigation struct {
	PageLeft  string
	PageRight string
	Remove    string
}

// NewNavigation normalizes the given symbols into a navigation table.
func NewNavigation(pageLeft, pageRight, remove string) Navigation {
	return Navigation{
		PageLeft:  parseSymbol(pageLeft),
		PageRight: parseSymbol(pageRight),
		Remove:    parseSymbol(remove),
	}
}

// DefaultNavigation returns the ◀ / ▶ / ❌ table.
func DefaultNavigation() Navigation {
	return NewNavigation("◀", "▶", "❌")
}

// Delta returns the page delta for a symbol: -1 for left, +1 for right and 0
// for remove. ok is false when the symbol is not part of the table.
func (n Navigation) Delta(symbol string) (delta int, ok bool) {
	switch symbol {
	case n.PageLeft:
		return -1, true
	case n.PageRight:
		return 1, true
	case n.Remove:
		return 0, true
	}
	return 0, false
}

// Contains reports whether the symbol is part of the navigation table.
func (n Navigation) Contains(symbol string) bool {
	_, ok := n.Delta(symbol)
	return ok
}

// Symbols returns the table's symbols in the order reactions are attached.
func (n Navigation) Symbols() []string {
	return []string{n.PageLeft, n.PageRight, n.Remove}
}

var (
	customEmojiPattern = regexp.MustCompile(`:[a-zA-Z0-9_~]+:[0-9]+`)
	unicodeNamePattern = regexp.MustCompile(`^\\N\{([^}]+)\}$`)
)

// emojiKey converts a received reaction emoji to the table's symbol format,
// using ":name:id" for custom emoji.
func emojiKey(e discordgo.Emoji) string {
	if e.ID == "" {
		return e.Name
	}
	return ":" + e.Name + ":" + e.ID
}

// reactionAPIName converts a table symbol to the form the reaction endpoints
// expect: "name:id" for custom emoji, the bare emoji otherwise.
func reactionAPIName(symbol string) string {
	if customEmojiPattern.MatchString(symbol) {
		return strings.TrimPrefix(symbol, ":")
	}
	return symbol
}

// parseSymbol normalizes the accepted emoji notations to the symbol format
// used for lookups.
func parseSymbol(s string) string {
	if match := customEmojiPattern.FindString(s); match != "" {
		return match
	}
	if m := unicodeNamePattern.FindStringSubmatch(s); m != nil {
		if r, ok := runeByName(m[1]); ok {
			return string(r)
		}
		return s
	}
	if strings.HasPrefix(s, `\U`) || strings.HasPrefix(s, `\u`) {
		if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
			return unquoted
		}
	}
	return s
}

var (
	runeNamesOnce sync.Once
	runesByName   map[string]rune
)

// runeByName resolves a unicode character name ("THUMBS UP SIGN") to a rune.
// The lookup table is built once, on first use.
func runeByName(name string) (rune, bool) {
	runeNamesOnce.Do(func() {
		runesByName = make(map[string]rune)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			if !utf8.ValidRune(r) {
				continue
			}
			n := runenames.Name(r)
			if n == "" || strings.HasPrefix(n, "<") {
				continue
			}
			runesByName[n] = r
		}
	})
	r, ok := runesByName[strings.ToUpper(name)]
	return r, ok
}

// cursor tracks the current position within a fixed page set, wrapping at
// both ends.
type cursor struct {
	position int
	total    int
}

// move shifts the position by delta, wrapping modulo total. The result is
// always non-negative.
func (c *cursor) move(delta int) int {
	c.position = ((c.position+delta)%c.total + c.total) % c.total
	return c.position
}

// jump moves directly to index i.
func (c *cursor) jump(i int) int {
	c.position = ((i % c.total) + c.total) % c.total
	return c.position
}
