package validators

import "strings"

// CleanNotes trims a free-text notes field, dropping it entirely when
// blank so the column stores NULL instead of whitespace.
func CleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
