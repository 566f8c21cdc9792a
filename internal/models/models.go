package models

// UserShare представляет структуру для ссылки пользователя
type UserShare struct {
	ShortURL string `json:"short_url"`
	ShareURL string `json:"share_url"`
}

// DeleteRequest представляет запрос на удаление ссылок
type DeleteRequest []string
