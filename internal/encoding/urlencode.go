package encoding

import "strings"

const upperhex = "0123456789ABCDEF"

// URLEncode экранирует строку для безопасной подстановки в URL.
// Буквы, цифры и символы -, _, ., ~ проходят без изменений, каждый
// остальной байт заменяется на %XX с hex-цифрами в верхнем регистре.
func URLEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}

	return b.String()
}

// isUnreserved сообщает, входит ли байт в unreserved-набор RFC 3986.
func isUnreserved(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
