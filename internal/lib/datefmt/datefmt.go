// Package datefmt форматирует даты поездок для карточек и списков.
//
// Диапазон выводится в виде "1-22nd March 2024": дни начала и окончания,
// порядковый суффикс дня окончания, месяц и год берутся из даты окончания.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyDate возвращается, если одна из дат не передана.
var ErrEmptyDate = errors.New("empty date")

// layouts перечисляет поддерживаемые форматы. День, месяц и год берутся
// в том виде, в котором они записаны в строке, без перевода в другую зону.
var layouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse разбирает строку даты в одном из поддерживаемых форматов.
func Parse(value string) (time.Time, error) {
	const op = "datefmt.Parse"

	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s: %w", op, ErrEmptyDate)
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("%s: %w", op, lastErr)
}

// OrdinalSuffix возвращает английский порядковый суффикс для дня месяца.
// 11, 12 и 13 всегда получают "th".
func OrdinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatRange возвращает подпись диапазона дат поездки.
//
// Пример:
//
//	FormatRange("2024-03-01", "2024-03-22") // "1-22nd March 2024"
func FormatRange(start, end string) (string, error) {
	const op = "datefmt.FormatRange"

	startDate, err := Parse(start)
	if err != nil {
		return "", fmt.Errorf("%s: start: %w", op, err)
	}
	endDate, err := Parse(end)
	if err != nil {
		return "", fmt.Errorf("%s: end: %w", op, err)
	}

	return FormatTimes(startDate, endDate), nil
}

// FormatTimes форматирует уже разобранные даты.
func FormatTimes(start, end time.Time) string {
	return fmt.Sprintf("%d-%d%s %s %d",
		start.Day(),
		end.Day(),
		OrdinalSuffix(end.Day()),
		end.Month().String(),
		end.Year(),
	)
}
