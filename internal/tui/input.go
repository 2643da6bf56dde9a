package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxInputLen caps every form field, in runes.
const maxInputLen = 2000

// editRune applies one keystroke to a single-line input. Printable runes
// are appended; backspace, ctrl+w and ctrl+u delete a rune, a word or the
// whole line. Other keys leave text as it is.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if text == "" {
			return text
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	case "ctrl+u":
		return ""
	case "ctrl+w":
		trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
		if i := strings.LastIndexFunc(trimmed, unicode.IsSpace); i >= 0 {
			return trimmed[:i+1]
		}
		return ""
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) != 1 || utf8.RuneCountInString(text) >= maxInputLen {
		return text
	}
	return text + key
}

// truncateToHeight keeps the first maxLines lines of s, newline included.
// maxLines <= 0 means no limit.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	end := 0
	for line := 0; line < maxLines; line++ {
		i := strings.IndexByte(s[end:], '\n')
		if i < 0 {
			return s
		}
		end += i + 1
	}
	return s[:end]
}

// renderField renders one labelled form input. Masked fields show bullets.
func renderField(label, value, placeholder string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prefix := "  "
	labelStyle := dimStyle
	if focused {
		prefix = inputPromptStyle.Render("> ")
		labelStyle = selectedStyle
	}
	line := prefix + labelStyle.Render(padRight(label, 10)) + " "
	switch {
	case shown == "" && !focused:
		return line + inputPlaceholderStyle.Render(placeholder)
	case focused:
		return line + normalStyle.Render(shown) + accentStyle.Render("█")
	default:
		return line + normalStyle.Render(shown)
	}
}

func padRight(s string, n int) string {
	if w := utf8.RuneCountInString(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
