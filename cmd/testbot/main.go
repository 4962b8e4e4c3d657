package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"prettyhelp"
	"prettyhelp/bot"
	"prettyhelp/commands"
)

const prefix = "."

var cooldowns = commands.NewCooldownTracker()

func registerCommands(b *bot.Bot) {
	commands.RegisterCategory(&commands.Category{
		Name:        "General",
		Description: "Everyday commands",
	})
	commands.RegisterCategory(&commands.Category{
		Name:        "Admin",
		Description: "Commands for managing the bot",
	})

	commands.Register(&commands.Command{
		Name:        "ping",
		Description: "Check that the bot is responsive",
		Usage:       ".ping",
		Category:    "General",
		Run: func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
			s.ChannelMessageSend(m.ChannelID, "Pong!")
		},
	})

	commands.Register(&commands.Command{
		Name:        "echo",
		Aliases:     []string{"say"},
		Description: "Repeat a message back",
		Help:        "Repeats the given text in the current channel.",
		Usage:       ".echo <text>",
		Category:    "General",
		Cooldown:    &commands.Cooldown{Rate: 3, Per: time.Minute},
		Run: func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
			if len(args) == 0 {
				s.ChannelMessageSend(m.ChannelID, "Usage: .echo <text>")
				return
			}
			s.ChannelMessageSend(m.ChannelID, strings.Join(args, " "))
		},
	})

	commands.Register(&commands.Command{
		Name:        "tag",
		Description: "Manage message tags",
		Help:        "Group of subcommands for creating and listing tags.",
		Category:    "General",
		Subcommands: []*commands.Command{
			{
				Name:        "add",
				Description: "Add a new tag",
				Usage:       ".tag add <name> <content>",
			},
			{
				Name:        "remove",
				Aliases:     []string{"rm"},
				Description: "Remove a tag",
				Usage:       ".tag remove <name>",
			},
			{
				Name:        "list",
				Description: "List all tags",
				Usage:       ".tag list",
			},
		},
		Run: func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
			s.ChannelMessageSend(m.ChannelID, "See `.help tag` for tag subcommands.")
		},
	})

	commands.Register(&commands.Command{
		Name:        "disable",
		Description: "Disable a command or category in this guild",
		Usage:       ".disable <command|category> <name>",
		Category:    "Admin",
		Run: func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
			toggleCommand(b, s, m, args, true)
		},
	})

	commands.Register(&commands.Command{
		Name:        "enable",
		Description: "Re-enable a command or category in this guild",
		Usage:       ".enable <command|category> <name>",
		Category:    "Admin",
		Run: func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
			toggleCommand(b, s, m, args, false)
		},
	})
}

func toggleCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, disable bool) {
	if m.GuildID == "" {
		s.ChannelMessageSend(m.ChannelID, "This command can only be used in a server.")
		return
	}
	if b.Db == nil {
		s.ChannelMessageSend(m.ChannelID, "No database configured, command toggles are unavailable.")
		return
	}
	if len(args) < 2 || (args[0] != bot.KindCommand && args[0] != bot.KindCategory) {
		s.ChannelMessageSend(m.ChannelID, "Usage: .enable|.disable <command|category> <name>")
		return
	}

	name := strings.ToLower(args[1])
	var err error
	if disable {
		err = b.DisableCommand(m.GuildID, name, args[0])
	} else {
		err = b.EnableCommand(m.GuildID, name, args[0])
	}
	if err != nil {
		log.Printf("Error toggling %s %s in guild %s: %v", args[0], name, m.GuildID, err)
		s.ChannelMessageSend(m.ChannelID, "Error updating command toggles.")
		return
	}

	state := "enabled"
	if disable {
		state = "disabled"
	}
	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%s `%s` is now %s.", strings.Title(args[0]), name, state))
}

// helpFilter hides commands that are disabled in the guild, directly or via
// their category.
func helpFilter(b *bot.Bot) func(guildID string, cmd *commands.Command) bool {
	return func(guildID string, cmd *commands.Command) bool {
		if b.IsDisabled(guildID, strings.ToLower(cmd.Name), bot.KindCommand) {
			return false
		}
		if cmd.Category != "" && b.IsDisabled(guildID, strings.ToLower(cmd.Category), bot.KindCategory) {
			return false
		}
		return true
	}
}

func handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	args := strings.Fields(m.Content)
	name := strings.ToLower(args[0][len(prefix):])

	cmd := commands.Lookup(name, true)
	if cmd == nil || cmd.Run == nil {
		return
	}

	if !cooldowns.Allow(m.Author.ID, cmd) {
		retry := cooldowns.RetryAfter(m.Author.ID, cmd)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("You're on cooldown. Try again in %.0f seconds.", retry.Seconds()))
		return
	}

	cmd.Run(s, m, args[1:])
}

func main() {
	godotenv.Load()

	b, err := bot.New(os.Getenv("DISCORD_TOKEN"), os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}

	registerCommands(b)

	cfg := prettyhelp.DefaultConfig()
	cfg.Description = "A demo bot for the prettyhelp command."
	cfg.Filter = helpFilter(b)
	if os.Getenv("HELP_MENU") == "app" {
		cfg.Menu = prettyhelp.NewAppMenu(2*time.Minute, false)
	}

	help := prettyhelp.New(cfg)
	commands.Register(help.Command())

	b.Client.AddHandler(handleMessage)

	if err := b.Client.Open(); err != nil {
		log.Fatal(err)
	}
	defer b.Client.Close()

	log.Println("Bot is running. Press Ctrl+C to exit.")
	select {}
}
