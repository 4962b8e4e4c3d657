package prettyhelp

import (
	"github.com/bwmarrin/discordgo"
)

// Menu is implemented by the navigation transports that present a page set
// to the invoking user. SendPages blocks until the navigation session ends
// (dismiss, timeout, or nothing to navigate).
type Menu interface {
	SendPages(s *discordgo.Session, m *discordgo.MessageCreate, channelID string, pages []*discordgo.MessageEmbed) error
}

// NoMenu sends only the first page and attaches no navigation.
type NoMenu struct{}

// SendPages implements Menu.
func (NoMenu) SendPages(s *discordgo.Session, m *discordgo.MessageCreate, channelID string, pages []*discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageSendEmbed(channelID, pages[0])
	return err
}
