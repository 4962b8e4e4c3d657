package prettyhelp

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"prettyhelp/commands"
)

// Default limits for embed pages. Discord rejects embeds at 6000 characters
// or 25 fields, so pages are kept strictly below both.
const (
	DefaultCharLimit  = 6000
	DefaultFieldLimit = 25
)

// Paginator packs commands, groups and categories into a sequence of embed
// pages, none of which exceeds the configured limits.
type Paginator struct {
	Prefix       string
	Suffix       string
	CharLimit    int
	FieldLimit   int
	Color        int
	ShowIndex    bool
	ImageURL     string
	ThumbnailURL string
	EndingNote   string

	pages []*discordgo.MessageEmbed
}

// NewPaginator creates a paginator with the default limits and code-block
// prefix/suffix.
func NewPaginator(showIndex bool, color int) *Paginator {
	return &Paginator{
		Prefix:     "```",
		Suffix:     "```",
		CharLimit:  DefaultCharLimit,
		FieldLimit: DefaultFieldLimit,
		Color:      color,
		ShowIndex:  showIndex,
	}
}

// Clear resets the paginator to have no pages.
func (p *Paginator) Clear() {
	p.pages = nil
}

// embedSize returns the total rune count of an embed's rendered text, the
// same quantity Discord checks against its 6000 character limit.
func embedSize(e *discordgo.MessageEmbed) int {
	size := len([]rune(e.Title)) + len([]rune(e.Description))
	if e.Footer != nil {
		size += len([]rune(e.Footer.Text))
	}
	if e.Author != nil {
		size += len([]rune(e.Author.Name))
	}
	for _, f := range e.Fields {
		size += len([]rune(f.Name)) + len([]rune(f.Value))
	}
	return size
}

// checkEmbed reports whether the embed, plus the candidate strings about to
// be added to it, still fits on one page.
func (p *Paginator) checkEmbed(e *discordgo.MessageEmbed, chars ...string) bool {
	size := embedSize(e)
	for _, c := range chars {
		size += len([]rune(c))
	}
	return size < p.CharLimit && len(e.Fields) < p.FieldLimit
}

func (p *Paginator) newPage(title, description string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       p.Color,
	}
	if p.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: p.ImageURL}
	}
	if p.ThumbnailURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.ThumbnailURL}
	}
	return e
}

func (p *Paginator) addPage(e *discordgo.MessageEmbed) {
	if p.EndingNote != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: p.EndingNote}
	}
	p.pages = append(p.pages, e)
}

// AddCog adds pages for a category and its commands. A category with no
// commands contributes no pages.
func (p *Paginator) AddCog(title, description string, list []*commands.Command) {
	if len(list) == 0 {
		return
	}
	page := p.newPage(title, description)
	p.addCommandFields(page, title, list, false)
}

// addCommandFields appends one field per command, sealing the current page
// and opening a continuation page with the same title whenever the next
// field would push the page over a limit.
func (p *Paginator) addCommandFields(page *discordgo.MessageEmbed, title string, list []*commands.Command, group bool) {
	for _, cmd := range list {
		shortDoc := cmd.ShortDoc()
		if !p.checkEmbed(page, p.EndingNote, cmd.Name, shortDoc, p.Prefix, p.Suffix) {
			p.addPage(page)
			page = p.newPage(title, page.Description)
		}
		name := cmd.Name
		if group {
			name = "🔗 " + name
		}
		if shortDoc == "" {
			shortDoc = "No Description"
		}
		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  p.Prefix + shortDoc + p.Suffix,
			Inline: false,
		})
	}
	p.addPage(page)
}

// commandInfo builds the long description block for a command help page.
func commandInfo(cmd *commands.Command) string {
	info := ""
	if cmd.Description != "" {
		info += cmd.Description + "\n\n"
	}
	if cmd.Help != "" {
		info += cmd.Help
	}
	if info == "" {
		info = "None"
	}
	return info
}

// AddCommand adds a help page for a single command, including its aliases,
// cooldown and usage.
func (p *Paginator) AddCommand(cmd *commands.Command, signature string) {
	page := p.newPage(cmd.Name, p.Prefix+commandInfo(cmd)+p.Suffix)
	if len(cmd.Aliases) > 0 {
		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:   "Aliases",
			Value:  p.Prefix + strings.Join(cmd.Aliases, ", ") + p.Suffix,
			Inline: false,
		})
	}
	if cmd.Cooldown != nil {
		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:  "Cooldown",
			Value: "`" + cmd.Cooldown.String() + "`",
		})
	}
	page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
		Name:   "Usage",
		Value:  p.Prefix + signature + p.Suffix,
		Inline: false,
	})
	p.addPage(page)
}

// AddGroup adds pages for a command group and its subcommands.
func (p *Paginator) AddGroup(group *commands.Command, list []*commands.Command) {
	page := p.newPage(group.Name, p.Prefix+commandInfo(group)+p.Suffix)
	p.addCommandFields(page, group.Name, list, true)
}

// AddIndex prepends an index page summarizing every page added so far. If
// the paginator was created without an index, the first page's description
// is replaced with the bot description instead.
func (p *Paginator) AddIndex(title, botDescription string) {
	if !p.ShowIndex {
		if len(p.pages) > 0 {
			p.pages[0].Description = botDescription
		}
		return
	}
	index := p.newPage(title, botDescription)
	for i, page := range p.pages {
		desc := page.Description
		if desc == "" {
			desc = "No Description"
		}
		index.Fields = append(index.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d) %s", i+1, page.Title),
			Value:  p.Prefix + desc + p.Suffix,
			Inline: false,
		})
	}
	if p.EndingNote != "" {
		index.Footer = &discordgo.MessageEmbedFooter{Text: p.EndingNote}
	}
	p.pages = append([]*discordgo.MessageEmbed{index}, p.pages...)
}

// Pages returns the rendered page list. Content pages get a `Page: i/N`
// marker; the index page, when present, sits at position 0 and is excluded
// from the count. Single-page sets carry no marker.
func (p *Paginator) Pages() []*discordgo.MessageEmbed {
	if len(p.pages) <= 1 {
		return p.pages
	}
	start, total := 1, len(p.pages)
	if p.ShowIndex {
		start, total = 0, total-1
	}
	for i, page := range p.pages {
		n := i + start
		if p.ShowIndex && n == 0 {
			continue
		}
		page.Description = fmt.Sprintf("`Page: %d/%d`\n%s", n, total, page.Description)
	}
	return p.pages
}
