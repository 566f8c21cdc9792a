// Package buildinfo предоставляет функциональность для управления информацией о сборке приложения.
// Версия, дата сборки и commit hash передаются при сборке через ldflags.
package buildinfo

import (
	"fmt"
	"io"
	"os"
)

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// DefaultInfo возвращает информацию о сборке по умолчанию
func DefaultInfo() *Info {
	return &Info{
		Version: "N/A",
		Date:    "N/A",
		Commit:  "N/A",
	}
}

// NewInfo создает новую структуру с информацией о сборке.
// Пустые значения (не заданные при сборке через ldflags) заменяются на "N/A".
func NewInfo(version, date, commit string) *Info {
	return &Info{
		Version: orDefault(version),
		Date:    orDefault(date),
		Commit:  orDefault(commit),
	}
}

func orDefault(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// Fprint выводит информацию о сборке в указанный writer
func (info *Info) Fprint(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}

// Print выводит информацию о сборке в консоль
func (info *Info) Print() {
	info.Fprint(os.Stdout)
}

// String возвращает строковое представление информации о сборке
func (info *Info) String() string {
	return fmt.Sprintf("Version: %s, Date: %s, Commit: %s", info.Version, info.Date, info.Commit)
}
