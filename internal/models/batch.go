package models

// BatchRequestEntry представляет одну запись в запросе на пакетное создание ссылок
type BatchRequestEntry struct {
	CorrelationID string `json:"correlation_id"`
	Expression    string `json:"expression"`
	Sizes         string `json:"sizes"`
}

// BatchResponseEntry представляет одну запись в ответе на пакетное создание ссылок
type BatchResponseEntry struct {
	CorrelationID string `json:"correlation_id"`
	ShortURL      string `json:"short_url"`
}
