// Package encoding реализует конвейер кодирования шаринг-ссылок:
// gzip-сжатие, base64 и процентное кодирование URL.
// Предоставляет сборку итоговой ссылки на веб-приложение из двух
// независимых сегментов (выражение и список размеров индексов).
package encoding

import "fmt"

// EncodeSegment пропускает данные через полный конвейер:
// сжатие gzip -> base64 -> процентное кодирование.
func EncodeSegment(data []byte) (string, error) {
	compressed, err := Compress(data)
	if err != nil {
		return "", err
	}
	return URLEncode(EncodeBase64(compressed)), nil
}

// BuildShareableURL собирает ссылку на веб-приложение из выражения и
// списка размеров индексов. Выражение оборачивается в кавычки как
// JSON-строка, размеры - в квадратные скобки как JSON-массив; каждая
// часть кодируется независимо и подставляется в шаблон
// <baseURL>?e=<выражение>&s=<размеры>.
//
// Кавычки и обратные слэши внутри expression не экранируются: формат
// сегмента согласован с принимающим веб-приложением.
func BuildShareableURL(baseURL, expression, sizesCSV string) (string, error) {
	jsonExpr := `"` + expression + `"`
	jsonSizes := "[" + sizesCSV + "]"

	encodedExpr, err := EncodeSegment([]byte(jsonExpr))
	if err != nil {
		return "", fmt.Errorf("expression segment: %w", err)
	}

	encodedSizes, err := EncodeSegment([]byte(jsonSizes))
	if err != nil {
		return "", fmt.Errorf("sizes segment: %w", err)
	}

	return baseURL + "?e=" + encodedExpr + "&s=" + encodedSizes, nil
}
