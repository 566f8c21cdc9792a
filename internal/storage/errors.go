package storage

import "errors"

// ErrShareNotFound возвращается, когда ссылка не найдена в хранилище
var ErrShareNotFound = errors.New("share link not found")

// ErrShareURLConflict возвращается, когда share_url уже существует
var ErrShareURLConflict = errors.New("share URL conflict")

// ErrShareDeleted возвращается, когда ссылка помечена как удаленная
var ErrShareDeleted = errors.New("share link is deleted")
