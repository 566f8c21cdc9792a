package encoding

import "encoding/base64"

// EncodeBase64 кодирует байты в стандартный base64-алфавит
// (A-Z, a-z, 0-9, +, /) с дополнением '=' до полной четверки символов.
// Пустой вход дает пустую строку без дополнения.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
