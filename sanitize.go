package promreg

// Sanitize maps arbitrary text into the character set accepted for metric and
// label names: lowercase ascii letters, digits, '_' and ':'. Uppercase letters
// are folded to lowercase and any other byte becomes '_'. Sanitizing an
// already-valid name is the identity function and allocates nothing.
func Sanitize(s string) string {
	for i := 0; i < len(s); i++ {
		if !validNameByte(s[i]) {
			return sanitizeSlow(s, i)
		}
	}
	return s
}

func sanitizeSlow(s string, from int) string {
	out := make([]byte, len(s))
	copy(out, s[:from])
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case validNameByte(c):
			out[i] = c
		case c >= 'A' && c <= 'Z':
			out[i] = c + ('a' - 'A')
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func validNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == ':'
}

// validName reports whether s is non-empty and entirely within the accepted
// character set.
func validName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !validNameByte(s[i]) {
			return false
		}
	}
	return true
}
