package lexer

// ASCII классификаторы; идентификаторы в C — ASCII.
func IsIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func IsIdentContinue(b byte) bool {
	return IsIdentStart(b) || IsDigit(b)
}

func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsLineSpace reports whether b is horizontal whitespace (space or tab).
func IsLineSpace(b byte) bool { return b == ' ' || b == '\t' }
