package bot

import (
	"database/sql"
	"log"

	"github.com/bwmarrin/discordgo"
	_ "github.com/lib/pq"
)

// Bot bundles the gateway session with the optional Postgres store backing
// guild-level command toggles.
type Bot struct {
	Db     *sql.DB
	Client *discordgo.Session
}

const schema = `
CREATE TABLE IF NOT EXISTS disabled_commands (
    guild_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    PRIMARY KEY (guild_id, name, type)
);`

// Kinds of disabled entries.
const (
	KindCommand  = "command"
	KindCategory = "category"
)

// New creates the bot session and, when dbURL is non-empty, opens the
// Postgres store and bootstraps its schema. Without a store every command
// counts as enabled.
func New(token string, dbURL string) (*Bot, error) {
	client, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	client.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessageReactions

	b := &Bot{Client: client}

	if dbURL != "" {
		db, err := sql.Open("postgres", dbURL)
		if err != nil {
			return nil, err
		}
		if _, err := db.Exec(schema); err != nil {
			return nil, err
		}
		b.Db = db
	}

	return b, nil
}

// DisableCommand marks a command or category as disabled in a guild.
func (b *Bot) DisableCommand(guildID, name, kind string) error {
	if b.Db == nil {
		return nil
	}
	_, err := b.Db.Exec(`
        INSERT INTO disabled_commands (guild_id, name, type)
        VALUES ($1, $2, $3)
        ON CONFLICT (guild_id, name, type) DO NOTHING
    `, guildID, name, kind)
	return err
}

// EnableCommand removes a disabled mark.
func (b *Bot) EnableCommand(guildID, name, kind string) error {
	if b.Db == nil {
		return nil
	}
	_, err := b.Db.Exec(
		"DELETE FROM disabled_commands WHERE guild_id = $1 AND name = $2 AND type = $3",
		guildID, name, kind)
	return err
}

// IsDisabled reports whether a command or category is disabled in a guild.
// Store errors are logged and treated as enabled.
func (b *Bot) IsDisabled(guildID, name, kind string) bool {
	if b.Db == nil || guildID == "" {
		return false
	}
	var count int
	err := b.Db.QueryRow(
		"SELECT COUNT(*) FROM disabled_commands WHERE guild_id = $1 AND name = $2 AND type = $3",
		guildID, name, kind).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("Error checking if %s %s is disabled in guild %s: %v", kind, name, guildID, err)
		return false
	}
	return count > 0
}
