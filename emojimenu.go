package prettyhelp

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// DefaultActiveTime is how long a navigation session waits for the next
// event before timing out.
const DefaultActiveTime = 30 * time.Second

// menuAction is the outcome of resolving one raw navigation event.
type menuAction int

const (
	actionNone menuAction = iota
	actionRender
	actionDismiss
)

// EmojiMenu navigates pages with reactions. It seeds the navigation
// reactions on the help message and runs one session loop per message,
// editing the message in place as the invoking user flips pages.
type EmojiMenu struct {
	Nav        Navigation
	ActiveTime time.Duration
	// DeleteAfterTimeout deletes the message on timeout instead of
	// removing the navigation reactions.
	DeleteAfterTimeout bool
}

// NewEmojiMenu creates a reaction menu. A zero activeTime uses
// DefaultActiveTime.
func NewEmojiMenu(nav Navigation, activeTime time.Duration, deleteAfterTimeout bool) *EmojiMenu {
	return &EmojiMenu{
		Nav:                nav,
		ActiveTime:         activeTime,
		DeleteAfterTimeout: deleteAfterTimeout,
	}
}

// transition resolves a raw reaction against the symbol table and the
// session owner, moving the cursor on an accepted navigation intent.
func (menu *EmojiMenu) transition(cur *cursor, symbol, userID, authorID string) menuAction {
	delta, ok := menu.Nav.Delta(symbol)
	if !ok || userID != authorID {
		return actionNone
	}
	if delta == 0 {
		return actionDismiss
	}
	cur.move(delta)
	return actionRender
}

// SendPages implements Menu. It returns once the session ends; failures
// editing or deleting the help message itself are returned, failures
// cleaning up stray reactions are logged and swallowed.
func (menu *EmojiMenu) SendPages(s *discordgo.Session, m *discordgo.MessageCreate, channelID string, pages []*discordgo.MessageEmbed) error {
	msg, err := s.ChannelMessageSendEmbed(channelID, pages[0])
	if err != nil {
		return err
	}
	if len(pages) <= 1 {
		return nil
	}

	for _, symbol := range menu.Nav.Symbols() {
		if err := s.MessageReactionAdd(channelID, msg.ID, reactionAPIName(symbol)); err != nil {
			log.Printf("Error adding %q reaction: %v", symbol, err)
		}
	}

	// Reaction events for this message only. The bot's own reactions are
	// filtered before they ever reach the session loop.
	events := make(chan *discordgo.MessageReactionAdd, 8)
	removeHandler := s.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.MessageID != msg.ID {
			return
		}
		if s.State.User != nil && r.UserID == s.State.User.ID {
			return
		}
		select {
		case events <- r:
		default:
		}
	})
	defer removeHandler()

	activeTime := menu.ActiveTime
	if activeTime <= 0 {
		activeTime = DefaultActiveTime
	}

	cur := &cursor{total: len(pages)}
	for {
		select {
		case r := <-events:
			switch menu.transition(cur, emojiKey(r.Emoji), r.UserID, m.Author.ID) {
			case actionDismiss:
				return s.ChannelMessageDelete(channelID, msg.ID)
			case actionRender:
				if _, err := s.ChannelMessageEditEmbed(channelID, msg.ID, pages[cur.position]); err != nil {
					return err
				}
			}
			// Remove the reaction so the user can press it again. May
			// fail without manage-messages permission.
			if err := s.MessageReactionRemove(channelID, msg.ID, r.Emoji.APIName(), r.UserID); err != nil {
				log.Printf("Error removing reaction: %v", err)
			}

		case <-time.After(activeTime):
			if menu.DeleteAfterTimeout {
				return s.ChannelMessageDelete(channelID, msg.ID)
			}
			for _, symbol := range menu.Nav.Symbols() {
				if err := s.MessageReactionRemove(channelID, msg.ID, reactionAPIName(symbol), "@me"); err != nil {
					log.Printf("Error removing %q reaction: %v", symbol, err)
				}
			}
			return nil
		}
	}
}
