// Package prettyhelp implements a paginated, embed-based help command for
// discordgo bots. Commands are packed into size-bounded embed pages and the
// invoking user flips between them with reactions or message components.
package prettyhelp

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"prettyhelp/commands"
)

// Config controls one help command instance. Construct it with
// DefaultConfig and override what you need; New fills in the rest.
type Config struct {
	// Color of the help embeds. Zero picks a random color once, at New.
	Color int
	// Description is the bot description shown on the index page.
	Description string
	// IndexTitle is the title of the index page. Defaults to "Categories".
	IndexTitle string
	// NoCategory labels commands without a category. Defaults to "No Category".
	NoCategory string
	// SortCommands sorts command listings alphabetically.
	SortCommands bool
	// ShowIndex prepends an index page listing every category page.
	ShowIndex bool
	// DMHelp sends the help output to the invoking user's DMs.
	DMHelp bool
	// CaseInsensitive ignores case when resolving command arguments.
	CaseInsensitive bool
	// DeleteInvoke deletes the invoking message, best-effort.
	DeleteInvoke bool
	// EndingNote is the footer template. {prefix}, {command} and {user}
	// are substituted per invocation.
	EndingNote   string
	ImageURL     string
	ThumbnailURL string
	// Prefix is the bot's command prefix, used in usage strings and the
	// ending note.
	Prefix string
	// CommandName is the name the help command is registered under.
	CommandName string
	// ActiveTime is the navigation idle timeout for the default menu.
	ActiveTime time.Duration
	// Menu is the navigation transport. Defaults to an EmojiMenu with the
	// ◀ / ▶ / ❌ table.
	Menu Menu
	// Registry supplies the commands to document. Defaults to
	// commands.DefaultRegistry.
	Registry *commands.Registry
	// Filter hides commands per guild, on top of the Hidden flag. Return
	// false to exclude the command from help output.
	Filter func(guildID string, cmd *commands.Command) bool
}

// DefaultConfig returns the config the original defaults: sorted commands,
// index page shown, "." prefix, invoked as "help".
func DefaultConfig() Config {
	return Config{
		SortCommands: true,
		ShowIndex:    true,
		Prefix:       ".",
		CommandName:  "help",
	}
}

const defaultEndingNote = "Type {prefix}{command} command for more info on a command.\n" +
	"You can also type {prefix}{command} category for more info on a category."

// PrettyHelp is the help command handler.
type PrettyHelp struct {
	cfg Config
}

// New creates a help command from cfg, applying defaults for unset fields.
func New(cfg Config) *PrettyHelp {
	if cfg.Registry == nil {
		cfg.Registry = commands.DefaultRegistry
	}
	if cfg.IndexTitle == "" {
		cfg.IndexTitle = "Categories"
	}
	if cfg.NoCategory == "" {
		cfg.NoCategory = "No Category"
	}
	if cfg.CommandName == "" {
		cfg.CommandName = "help"
	}
	if cfg.EndingNote == "" {
		cfg.EndingNote = defaultEndingNote
	}
	if cfg.Color == 0 {
		cfg.Color = rand.Intn(0xFFFFFF) + 1
	}
	if cfg.Menu == nil {
		cfg.Menu = NewEmojiMenu(DefaultNavigation(), cfg.ActiveTime, false)
	}
	return &PrettyHelp{cfg: cfg}
}

// Command returns a registry entry for the help command itself, wired to
// Handle.
func (h *PrettyHelp) Command() *commands.Command {
	return &commands.Command{
		Name:        h.cfg.CommandName,
		Aliases:     []string{"h"},
		Description: "Shows help for the bot, a command, a group or a category",
		Usage:       h.cfg.Prefix + h.cfg.CommandName + " [command]",
		Category:    "General",
		Run:         h.Handle,
	}
}

// Handle runs the help command. args are the words after the command name.
func (h *PrettyHelp) Handle(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if err := h.checkPermissions(s, m); err != nil {
		if _, err := s.ChannelMessageSend(m.ChannelID, "Cannot show help: "+err.Error()); err != nil {
			log.Printf("Error reporting missing permissions: %v", err)
		}
		return
	}

	if h.cfg.DeleteInvoke {
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			log.Printf("Missing permissions to delete invoking message: %v", err)
		}
	}

	pag := NewPaginator(h.cfg.ShowIndex, h.cfg.Color)
	pag.ImageURL = h.cfg.ImageURL
	pag.ThumbnailURL = h.cfg.ThumbnailURL
	pag.EndingNote = h.endingNote(m)

	destination := m.ChannelID
	if h.cfg.DMHelp {
		if ch, err := s.UserChannelCreate(m.Author.ID); err == nil {
			destination = ch.ID
		} else {
			log.Printf("Error opening DM channel: %v", err)
		}
	}

	if len(args) == 0 {
		h.addBotHelp(pag, m.GuildID)
	} else if !h.addQueryHelp(pag, m.GuildID, args) {
		query := strings.Join(args, " ")
		if _, err := s.ChannelMessageSend(destination, fmt.Sprintf("No command called %q found.", query)); err != nil {
			log.Printf("Error sending help error message: %v", err)
		}
		return
	}

	pages := pag.Pages()
	if len(pages) == 0 {
		// Nothing to navigate, degrade to a plain message.
		if _, err := s.ChannelMessageSend(destination, "```"+pag.EndingNote+"```"); err != nil {
			log.Printf("Error sending help fallback: %v", err)
		}
		return
	}

	if err := h.cfg.Menu.SendPages(s, m, destination, pages); err != nil {
		log.Printf("Error sending help pages: %v", err)
	}
}

// checkPermissions verifies the bot can post embeds and drive reactions in
// the channel before any page is built. DMs always pass.
func (h *PrettyHelp) checkPermissions(s *discordgo.Session, m *discordgo.MessageCreate) error {
	if m.GuildID == "" {
		return nil
	}
	perms, err := s.UserChannelPermissions(s.State.User.ID, m.ChannelID)
	if err != nil {
		return fmt.Errorf("checking channel permissions: %w", err)
	}
	var missing []string
	for _, required := range []struct {
		bit  int64
		name string
	}{
		{discordgo.PermissionEmbedLinks, "embed links"},
		{discordgo.PermissionReadMessageHistory, "read message history"},
		{discordgo.PermissionAddReactions, "add reactions"},
	} {
		if perms&required.bit == 0 {
			missing = append(missing, required.name)
		}
	}
	if len(missing) > 0 {
		return &MissingPermissionsError{Missing: missing}
	}
	return nil
}

// addBotHelp packs every visible command grouped by category.
func (h *PrettyHelp) addBotHelp(pag *Paginator, guildID string) {
	all := h.visible(guildID, h.cfg.Registry.All())

	// Leave the help command itself out of listings unless it is the
	// only command.
	if len(all) > 1 {
		kept := all[:0]
		for _, cmd := range all {
			if cmd.Name != h.cfg.CommandName {
				kept = append(kept, cmd)
			}
		}
		all = kept
	}

	byCategory := make(map[string][]*commands.Command)
	for _, cmd := range all {
		byCategory[cmd.Category] = append(byCategory[cmd.Category], cmd)
	}

	pag.AddCog(h.cfg.NoCategory, "", h.sorted(byCategory[""]))

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		description := ""
		if cat := h.cfg.Registry.Category(name, false); cat != nil {
			description = cat.Description
		}
		pag.AddCog(name, description, h.sorted(byCategory[name]))
	}

	pag.AddIndex(h.cfg.IndexTitle, h.cfg.Description)
}

// addQueryHelp packs help for the category, group or command named by args.
// It reports false when nothing matches.
func (h *PrettyHelp) addQueryHelp(pag *Paginator, guildID string, args []string) bool {
	reg := h.cfg.Registry

	if len(args) == 1 {
		if cat := reg.Category(args[0], h.cfg.CaseInsensitive); cat != nil {
			pag.AddCog(cat.Name, cat.Description, h.visible(guildID, reg.ByCategory(cat.Name)))
			return true
		}
	}

	cmd := reg.Lookup(args[0], h.cfg.CaseInsensitive)
	if cmd == nil {
		return false
	}

	// Walk the subcommand chain as far as it resolves; unknown trailing
	// words keep the deepest match.
	qualified := cmd.Name
	for _, key := range args[1:] {
		if sub := cmd.Subcommand(key); sub != nil {
			cmd = sub
			qualified += " " + cmd.Name
		}
	}

	if cmd.Hidden || (h.cfg.Filter != nil && !h.cfg.Filter(guildID, cmd)) {
		return false
	}

	if cmd.IsGroup() {
		pag.AddGroup(cmd, h.sorted(h.visible(guildID, cmd.Subcommands)))
	} else {
		pag.AddCommand(cmd, h.signature(qualified, cmd))
	}
	return true
}

// visible filters hidden commands and applies the configured guild filter.
func (h *PrettyHelp) visible(guildID string, list []*commands.Command) []*commands.Command {
	out := make([]*commands.Command, 0, len(list))
	for _, cmd := range list {
		if cmd.Hidden {
			continue
		}
		if h.cfg.Filter != nil && !h.cfg.Filter(guildID, cmd) {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// sorted returns the list ordered by name when sorting is enabled.
func (h *PrettyHelp) sorted(list []*commands.Command) []*commands.Command {
	if !h.cfg.SortCommands {
		return list
	}
	out := make([]*commands.Command, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// signature returns the usage string rendered on a command help page.
func (h *PrettyHelp) signature(qualified string, cmd *commands.Command) string {
	if cmd.Usage != "" {
		return cmd.Usage
	}
	return h.cfg.Prefix + qualified
}

// endingNote substitutes the template placeholders for this invocation.
func (h *PrettyHelp) endingNote(m *discordgo.MessageCreate) string {
	username := ""
	if m.Author != nil {
		username = m.Author.Username
	}
	return strings.NewReplacer(
		"{prefix}", h.cfg.Prefix,
		"{command}", h.cfg.CommandName,
		"{user}", username,
	).Replace(h.cfg.EndingNote)
}
