package prettyhelp

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain emoji", "👍", "👍"},
		{"plain arrow", "◀", "◀"},
		{"unicode escape", `\U0001F44D`, "👍"},
		{"short unicode escape", `◀`, "◀"},
		{"unicode name", `\N{THUMBS UP SIGN}`, "👍"},
		{"custom emoji", ":custom_emoji:8675309", ":custom_emoji:8675309"},
		{"custom emoji embedded", `\:my_emoji:12345 in discord`, ":my_emoji:12345"},
		{"free text untouched", "not an emoji", "not an emoji"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSymbol(tt.in))
		})
	}
}

func TestNavigationDelta(t *testing.T) {
	nav := DefaultNavigation()

	delta, ok := nav.Delta("◀")
	assert.True(t, ok)
	assert.Equal(t, -1, delta)

	delta, ok = nav.Delta("▶")
	assert.True(t, ok)
	assert.Equal(t, 1, delta)

	delta, ok = nav.Delta("❌")
	assert.True(t, ok)
	assert.Equal(t, 0, delta)

	_, ok = nav.Delta("👍")
	assert.False(t, ok)
	assert.False(t, nav.Contains("👍"))
	assert.True(t, nav.Contains("▶"))
}

func TestNavigationNormalizesSymbols(t *testing.T) {
	nav := NewNavigation(`\U0001F44D`, "👎", ":discord:743511195197374563")

	delta, ok := nav.Delta("👍")
	assert.True(t, ok)
	assert.Equal(t, -1, delta)

	delta, ok = nav.Delta(":discord:743511195197374563")
	assert.True(t, ok)
	assert.Equal(t, 0, delta)
}

func TestCursorWraparound(t *testing.T) {
	c := &cursor{total: 5}

	assert.Equal(t, 4, c.move(-1), "previous from 0 should wrap to the last page")
	assert.Equal(t, 0, c.move(1), "next from the last page should wrap to 0")

	c.jump(3)
	assert.Equal(t, 3, c.position)
	assert.Equal(t, 4, c.move(1))
	assert.Equal(t, 0, c.move(1))
}

func TestEmojiKey(t *testing.T) {
	assert.Equal(t, "👍", emojiKey(discordgo.Emoji{Name: "👍"}))
	assert.Equal(t, ":custom:123", emojiKey(discordgo.Emoji{Name: "custom", ID: "123"}))
}

func TestReactionAPIName(t *testing.T) {
	assert.Equal(t, "custom:123", reactionAPIName(":custom:123"))
	assert.Equal(t, "👍", reactionAPIName("👍"))
}
