package prettyhelp

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettyhelp/commands"
)

func testRegistry() *commands.Registry {
	reg := commands.NewRegistry()
	reg.RegisterCategory(&commands.Category{Name: "General", Description: "Everyday commands"})
	reg.Register(&commands.Command{Name: "help", Description: "Shows help", Category: "General"})
	reg.Register(&commands.Command{Name: "ping", Description: "Check latency", Category: "General"})
	reg.Register(&commands.Command{Name: "ban", Description: "Ban a user", Category: "Moderation"})
	reg.Register(&commands.Command{Name: "kick", Description: "Kick a user", Category: "Moderation"})
	reg.Register(&commands.Command{Name: "secret", Description: "Hidden command", Hidden: true})
	reg.Register(&commands.Command{Name: "whoami", Aliases: []string{"me"}, Description: "Show your user"})
	reg.Register(&commands.Command{
		Name:        "tag",
		Description: "Manage tags",
		Category:    "General",
		Subcommands: []*commands.Command{
			{Name: "add", Description: "Add a tag"},
			{Name: "remove", Aliases: []string{"rm"}},
		},
	})
	return reg
}

func testHelp(t *testing.T, mutate func(*Config)) *PrettyHelp {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Registry = testRegistry()
	cfg.Color = 0x00ff00
	cfg.Menu = NoMenu{}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg)
}

func invokingMessage() *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg1",
		ChannelID: "chan1",
		Author:    &discordgo.User{ID: "user1", Username: "tester"},
	}}
}

func TestNewDefaults(t *testing.T) {
	h := New(Config{})
	assert.Equal(t, "Categories", h.cfg.IndexTitle)
	assert.Equal(t, "No Category", h.cfg.NoCategory)
	assert.Equal(t, "help", h.cfg.CommandName)
	assert.NotZero(t, h.cfg.Color, "an unset color gets a random non-zero default")
	assert.NotNil(t, h.cfg.Menu)
	assert.NotNil(t, h.cfg.Registry)
}

func TestEndingNoteSubstitution(t *testing.T) {
	h := testHelp(t, func(cfg *Config) {
		cfg.EndingNote = "Type {prefix}{command} for help, {user}."
		cfg.Prefix = "!"
	})
	note := h.endingNote(invokingMessage())
	assert.Equal(t, "Type !help for help, tester.", note)
}

func TestBotHelpGroupsByCategory(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(true, 0)
	h.addBotHelp(pag, "")

	pages := pag.Pages()
	require.Len(t, pages, 4, "expected index, No Category, General and Moderation pages")

	assert.Equal(t, "Categories", pages[0].Title)
	assert.Equal(t, "No Category", pages[1].Title)
	assert.Equal(t, "General", pages[2].Title)
	assert.Equal(t, "Moderation", pages[3].Title)

	// The uncategorized page hides the hidden command.
	require.Len(t, pages[1].Fields, 1)
	assert.Equal(t, "whoami", pages[1].Fields[0].Name)

	// The help command itself is not listed.
	for _, f := range pages[2].Fields {
		assert.NotEqual(t, "help", f.Name)
	}

	// Category description from the registry, sorted commands.
	assert.Contains(t, pages[2].Description, "Everyday commands")
	assert.Equal(t, "ban", pages[3].Fields[0].Name)
	assert.Equal(t, "kick", pages[3].Fields[1].Name)
}

func TestBotHelpRespectsFilter(t *testing.T) {
	h := testHelp(t, func(cfg *Config) {
		cfg.Filter = func(guildID string, cmd *commands.Command) bool {
			return cmd.Category != "Moderation"
		}
	})
	pag := NewPaginator(false, 0)
	h.addBotHelp(pag, "guild1")

	for _, page := range pag.Pages() {
		assert.NotEqual(t, "Moderation", page.Title)
	}
}

func TestQueryHelpCommand(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"ping"}))
	pages := pag.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, "ping", pages[0].Title)
	assert.Contains(t, pages[0].Description, "Check latency")
}

func TestQueryHelpAlias(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"me"}))
	assert.Equal(t, "whoami", pag.Pages()[0].Title)
}

func TestQueryHelpCaseInsensitive(t *testing.T) {
	h := testHelp(t, func(cfg *Config) { cfg.CaseInsensitive = true })
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"PING"}))
	assert.Equal(t, "ping", pag.Pages()[0].Title)
}

func TestQueryHelpGroup(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"tag"}))
	pages := pag.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, "tag", pages[0].Title)
	require.Len(t, pages[0].Fields, 2)
	assert.Equal(t, "🔗 add", pages[0].Fields[0].Name)
}

func TestQueryHelpSubcommand(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"tag", "add"}))
	pages := pag.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, "add", pages[0].Title)

	// Usage falls back to the prefixed qualified name.
	last := pages[0].Fields[len(pages[0].Fields)-1]
	assert.Equal(t, "Usage", last.Name)
	assert.Contains(t, last.Value, ".tag add")
}

func TestQueryHelpCategory(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	require.True(t, h.addQueryHelp(pag, "", []string{"Moderation"}))
	pages := pag.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, "Moderation", pages[0].Title)
	assert.Len(t, pages[0].Fields, 2)
}

func TestQueryHelpUnknown(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	assert.False(t, h.addQueryHelp(pag, "", []string{"nosuchcommand"}))
	assert.Empty(t, pag.Pages())
}

func TestQueryHelpHidden(t *testing.T) {
	h := testHelp(t, nil)
	pag := NewPaginator(false, 0)

	assert.False(t, h.addQueryHelp(pag, "", []string{"secret"}), "hidden commands resolve like unknown ones")
}

func TestSortedDisabled(t *testing.T) {
	h := testHelp(t, func(cfg *Config) { cfg.SortCommands = false })
	list := []*commands.Command{{Name: "b"}, {Name: "a"}}
	assert.Equal(t, list, h.sorted(list), "sorting disabled keeps caller order")
}

func TestMissingPermissionsError(t *testing.T) {
	err := &MissingPermissionsError{Missing: []string{"embed links", "add reactions"}}
	assert.Equal(t, "missing embed links, add reactions permission(s) in this channel", err.Error())
}
