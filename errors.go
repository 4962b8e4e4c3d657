package prettyhelp

import "strings"

// MissingPermissionsError is returned when the bot lacks the channel
// permissions the help command needs before any page is built.
type MissingPermissionsError struct {
	Missing []string
}

func (e *MissingPermissionsError) Error() string {
	return "missing " + strings.Join(e.Missing, ", ") + " permission(s) in this channel"
}
