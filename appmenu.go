package prettyhelp

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Component custom IDs for the app menu controls.
const (
	componentPrevious = "pretty_help:previous"
	componentNext     = "pretty_help:next"
	componentDelete   = "pretty_help:delete"
	componentSelect   = "pretty_help:select"
)

// Discord caps select menus at 25 options and 100 characters per label or
// description.
const (
	maxSelectOptions   = 25
	maxSelectTextWidth = 100
)

// AppMenu navigates pages with Previous/Next/Delete buttons and a per-page
// select menu instead of reactions.
type AppMenu struct {
	ActiveTime time.Duration
	// DeleteAfterTimeout deletes the message on timeout instead of
	// stripping its components.
	DeleteAfterTimeout bool
	// Ephemeral drops the delete button, which has no effect on messages
	// only the invoking user can see.
	Ephemeral bool
}

// NewAppMenu creates a component menu. A zero activeTime uses
// DefaultActiveTime.
func NewAppMenu(activeTime time.Duration, deleteAfterTimeout bool) *AppMenu {
	return &AppMenu{ActiveTime: activeTime, DeleteAfterTimeout: deleteAfterTimeout}
}

// navComponents builds the button row and page select for a page set.
// Single-page sets get no components at all.
func (menu *AppMenu) navComponents(pages []*discordgo.MessageEmbed) []discordgo.MessageComponent {
	if len(pages) <= 1 {
		return nil
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{Label: "Previous", Style: discordgo.SuccessButton, CustomID: componentPrevious},
		discordgo.Button{Label: "Next", Style: discordgo.PrimaryButton, CustomID: componentNext},
	}
	if !menu.Ephemeral {
		buttons = append(buttons, discordgo.Button{Label: "Delete", Style: discordgo.DangerButton, CustomID: componentDelete})
	}

	count := len(pages)
	if count > maxSelectOptions {
		count = maxSelectOptions
	}
	options := make([]discordgo.SelectMenuOption, 0, count)
	for i, page := range pages[:count] {
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncate(page.Title, maxSelectTextWidth),
			Description: truncate(strings.ReplaceAll(page.Description, "`", ""), maxSelectTextWidth),
			Value:       strconv.Itoa(i),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: componentSelect, Options: options},
		}},
	}
}

// SendPages implements Menu.
func (menu *AppMenu) SendPages(s *discordgo.Session, m *discordgo.MessageCreate, channelID string, pages []*discordgo.MessageEmbed) error {
	components := menu.navComponents(pages)
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{pages[0]},
		Components: components,
	})
	if err != nil {
		return err
	}
	if len(pages) <= 1 {
		return nil
	}

	events := make(chan *discordgo.InteractionCreate, 8)
	removeHandler := s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		if i.Message == nil || i.Message.ID != msg.ID {
			return
		}
		select {
		case events <- i:
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
		case i := <-events:
			data := i.MessageComponentData()

			if interactionUserID(i) != m.Author.ID {
				// Acknowledge so the interaction doesn't error, but
				// leave the page alone.
				if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseDeferredMessageUpdate,
				}); err != nil {
					log.Printf("Error acknowledging interaction: %v", err)
				}
				continue
			}

			switch data.CustomID {
			case componentDelete:
				if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseDeferredMessageUpdate,
				}); err != nil {
					log.Printf("Error acknowledging interaction: %v", err)
				}
				return s.ChannelMessageDelete(channelID, msg.ID)

			case componentPrevious:
				cur.move(-1)
			case componentNext:
				cur.move(1)
			case componentSelect:
				if len(data.Values) == 0 {
					continue
				}
				index, err := strconv.Atoi(data.Values[0])
				if err != nil {
					continue
				}
				cur.jump(index)
			default:
				continue
			}

			if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseUpdateMessage,
				Data: &discordgo.InteractionResponseData{
					Embeds:     []*discordgo.MessageEmbed{pages[cur.position]},
					Components: components,
				},
			}); err != nil {
				return err
			}

		case <-time.After(activeTime):
			if menu.DeleteAfterTimeout {
				return s.ChannelMessageDelete(channelID, msg.ID)
			}
			empty := []discordgo.MessageComponent{}
			if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    channelID,
				ID:         msg.ID,
				Components: &empty,
			}); err != nil {
				log.Printf("Error stripping components: %v", err)
			}
			return nil
		}
	}
}

// interactionUserID returns the acting user of an interaction, whether it
// arrived from a guild or a DM.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
