package utils

import (
	"fmt"
	"time"
)

// Display times follow the chat audience timezone (UTC+5)
var displayZone = time.FixedZone("UTC+5", 5*3600)

var ruMonthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// airlineNames maps IATA airline codes to display names for carriers
// flying the routes this service watches. Unknown codes fall back to the code.
var airlineNames = map[string]string{
	"UT": "Utair",
	"SU": "Аэрофлот",
	"S7": "S7 Airlines",
	"U6": "Уральские Авиалинии",
	"WZ": "Red Wings",
	"N4": "Nordwind",
	"DP": "Победа",
	"R3": "Якутия",
	"5N": "СМАРТАВИА",
	"EO": "Pegas Fly",
	"RT": "ЮВТ АЭРО",
	"A4": "Азимут",
	"IO": "IrAero",
	"YC": "ЯМАЛ",
	"7R": "Руслайн",
	"KV": "КрасАвиа",
}

// cityNames maps IATA city/airport codes to Russian city names
var cityNames = map[string]string{
	"MOW": "Москва",
	"LED": "Санкт-Петербург",
	"UFA": "Уфа",
	"USK": "Усинск",
	"KZN": "Казань",
	"AER": "Сочи",
	"SVX": "Екатеринбург",
	"OVB": "Новосибирск",
	"VVO": "Владивосток",
	"KGD": "Калининград",
	"ROV": "Ростов-на-Дону",
	"KRR": "Краснодар",
	"SIP": "Симферополь",
	"GOJ": "Нижний Новгород",
	"SGC": "Сургут",
	"MRV": "Минеральные Воды",
	"CEK": "Челябинск",
	"KUF": "Самара",
	"BAX": "Барнаул",
	"OMS": "Омск",
	"TJM": "Тюмень",
	"IKT": "Иркутск",
	"MMK": "Мурманск",
	"KJA": "Красноярск",
	"VOG": "Волгоград",
}

// AirlineName returns the display name for an airline code, or the code itself
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}

// CityName returns the Russian city name for an IATA code, or the code itself
func CityName(code string) string {
	if name, ok := cityNames[code]; ok {
		return name
	}
	return code
}

// FormatDuration renders minutes as "2 ч 15 мин" or "45 мин"
func FormatDuration(minutes int64) string {
	hours := minutes / 60
	remaining := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d ч %d мин", hours, remaining)
	}
	return fmt.Sprintf("%d мин", remaining)
}

// FormatDateRu renders a date as "5 июня 2024"
func FormatDateRu(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonthsGenitive[t.Month()-1], t.Year())
}

// FormatDateTimeRu parses an RFC3339 timestamp and renders it in the display
// timezone as "5 июня 2024 в 15:04". The original string is returned when it
// does not parse.
func FormatDateTimeRu(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	local := t.In(displayZone)
	return fmt.Sprintf("%d %s %d в %02d:%02d",
		local.Day(), ruMonthsGenitive[local.Month()-1], local.Year(),
		local.Hour(), local.Minute())
}

// FormatTimeRu renders an instant in the display timezone with seconds
func FormatTimeRu(t time.Time) string {
	local := t.In(displayZone)
	return fmt.Sprintf("%d %s %d в %02d:%02d:%02d",
		local.Day(), ruMonthsGenitive[local.Month()-1], local.Year(),
		local.Hour(), local.Minute(), local.Second())
}

// FormatDateRangeRu renders an inclusive date range, collapsing repeated
// month and year: "с 1 по 10 июня 2024", "с 25 июня по 5 июля 2024",
// "с 25 декабря 2024 по 5 января 2025".
func FormatDateRangeRu(start, end time.Time) string {
	switch {
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("с %d по %d %s %d",
			start.Day(), end.Day(), ruMonthsGenitive[end.Month()-1], end.Year())
	case start.Year() == end.Year():
		return fmt.Sprintf("с %d %s по %d %s %d",
			start.Day(), ruMonthsGenitive[start.Month()-1],
			end.Day(), ruMonthsGenitive[end.Month()-1], end.Year())
	default:
		return fmt.Sprintf("с %d %s %d по %d %s %d",
			start.Day(), ruMonthsGenitive[start.Month()-1], start.Year(),
			end.Day(), ruMonthsGenitive[end.Month()-1], end.Year())
	}
}
