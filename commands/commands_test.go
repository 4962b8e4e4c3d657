package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{Name: "ping", Aliases: []string{"p"}, Category: "General"})

	assert.NotNil(t, reg.Lookup("ping", false))
	assert.NotNil(t, reg.Lookup("p", false), "aliases resolve to the command")
	assert.Nil(t, reg.Lookup("pong", false))
}

func TestLookupCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{Name: "ping"})

	assert.Nil(t, reg.Lookup("PING", false))
	assert.NotNil(t, reg.Lookup("PING", true))
}

func TestAllSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{Name: "zeta"})
	reg.Register(&Command{Name: "alpha"})
	reg.Register(&Command{Name: "mid"})

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "mid", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
}

func TestCategories(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Command{Name: "ban", Category: "Moderation"})
	reg.Register(&Command{Name: "ping", Category: "General"})
	reg.Register(&Command{Name: "whoami"})

	assert.Equal(t, []string{"General", "Moderation"}, reg.Categories())

	mods := reg.ByCategory("Moderation")
	require.Len(t, mods, 1)
	assert.Equal(t, "ban", mods[0].Name)
}

func TestCategoryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCategory(&Category{Name: "General", Description: "Everyday commands"})

	require.NotNil(t, reg.Category("General", false))
	assert.Nil(t, reg.Category("general", false))
	require.NotNil(t, reg.Category("general", true))
	assert.Equal(t, "Everyday commands", reg.Category("general", true).Description)
}

func TestShortDoc(t *testing.T) {
	cmd := &Command{Description: "first line\nsecond line"}
	assert.Equal(t, "first line", cmd.ShortDoc())

	cmd = &Command{Help: "help text only"}
	assert.Equal(t, "help text only", cmd.ShortDoc())

	assert.Empty(t, (&Command{}).ShortDoc())
}

func TestSubcommand(t *testing.T) {
	group := &Command{
		Name: "tag",
		Subcommands: []*Command{
			{Name: "add"},
			{Name: "remove", Aliases: []string{"rm"}},
		},
	}
	require.True(t, group.IsGroup())
	assert.NotNil(t, group.Subcommand("add"))
	assert.NotNil(t, group.Subcommand("rm"), "subcommand aliases resolve")
	assert.Nil(t, group.Subcommand("list"))
	assert.False(t, (&Command{Name: "ping"}).IsGroup())
}

func TestCooldownString(t *testing.T) {
	c := &Cooldown{Rate: 2, Per: 30 * time.Second}
	assert.Equal(t, "2 time(s) every 30 second(s)", c.String())
}
