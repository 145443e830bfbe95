package export

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// localeDate renders a date the short es-CO way: 3/9/2026.
func localeDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// longDate renders a date the long es-CO way: 3 de septiembre de 2026.
func longDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// fileDate is the date fragment embedded in single-export filenames.
// Dashes instead of the display form's slashes keep the name portable.
func fileDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Day(), int(t.Month()), t.Year())
}
