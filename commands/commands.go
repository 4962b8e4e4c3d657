package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc defines the signature for command handlers
type HandlerFunc func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// Cooldown describes a command's rate limit: Rate uses allowed every Per window.
type Cooldown struct {
	Rate int
	Per  time.Duration
}

// String renders the cooldown the way it appears on help pages.
func (c *Cooldown) String() string {
	return fmt.Sprintf("%d time(s) every %.0f second(s)", c.Rate, c.Per.Seconds())
}

// Command holds detailed information about a command. A Command with
// Subcommands acts as a group.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Help        string
	Usage       string
	Category    string
	Hidden      bool
	Cooldown    *Cooldown
	Subcommands []*Command
	Run         HandlerFunc
}

// IsGroup reports whether the command has subcommands.
func (c *Command) IsGroup() bool {
	return len(c.Subcommands) > 0
}

// ShortDoc returns the first line of the command's description, falling back
// to the first line of its long help text.
func (c *Command) ShortDoc() string {
	doc := c.Description
	if doc == "" {
		doc = c.Help
	}
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}
	return doc
}

// Subcommand looks up a direct subcommand by name or alias.
func (c *Command) Subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
		for _, alias := range sub.Aliases {
			if alias == name {
				return sub
			}
		}
	}
	return nil
}

// Category groups commands under a shared name on help pages.
type Category struct {
	Name        string
	Description string
}

// Registry stores commands and categories by name. It does not perform
// dispatch; each adapter looks up commands and invokes them itself.
type Registry struct {
	commands   map[string]*Command
	aliases    map[string]string
	categories map[string]*Category
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*Command),
		aliases:    make(map[string]string),
		categories: make(map[string]*Category),
	}
}

// Register adds a command. Usually called from init() or bot setup.
func (r *Registry) Register(c *Command) {
	r.commands[c.Name] = c
	for _, alias := range c.Aliases {
		r.aliases[alias] = c.Name
	}
	if c.Category != "" {
		if _, exists := r.categories[c.Category]; !exists {
			r.categories[c.Category] = &Category{Name: c.Category}
		}
	}
}

// RegisterCategory adds category metadata shown on its help page.
func (r *Registry) RegisterCategory(cat *Category) {
	r.categories[cat.Name] = cat
}

// Lookup resolves a name or alias to a command, optionally ignoring case.
func (r *Registry) Lookup(name string, caseInsensitive bool) *Command {
	if caseInsensitive {
		name = strings.ToLower(name)
	}
	if actual, isAlias := r.aliases[name]; isAlias {
		name = actual
	}
	return r.commands[name]
}

// Category returns the metadata for a category name, or nil. When
// caseInsensitive is set the match ignores case.
func (r *Registry) Category(name string, caseInsensitive bool) *Category {
	if cat, exists := r.categories[name]; exists {
		return cat
	}
	if caseInsensitive {
		for _, cat := range r.categories {
			if strings.EqualFold(cat.Name, name) {
				return cat
			}
		}
	}
	return nil
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []*Command {
	list := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Categories returns every category name in sorted order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory returns all commands in a category, sorted by name.
func (r *Registry) ByCategory(category string) []*Command {
	var list []*Command
	for _, c := range r.commands {
		if c.Category == category {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// DefaultRegistry is the registry used by the package-level helpers.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c *Command) {
	DefaultRegistry.Register(c)
}

// RegisterCategory adds category metadata to the default registry.
func RegisterCategory(cat *Category) {
	DefaultRegistry.RegisterCategory(cat)
}

// Lookup resolves a name against the default registry.
func Lookup(name string, caseInsensitive bool) *Command {
	return DefaultRegistry.Lookup(name, caseInsensitive)
}
