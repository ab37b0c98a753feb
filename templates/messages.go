// Package templates builds the Russian-language HTML messages posted to
// Telegram. Dynamic codes degrade to their raw form when no display name
// is known.
package templates

import (
	"fmt"
	"strings"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/pkg/utils"
)

// Startup is the banner posted to devlogs when the service starts
func Startup(origin, destination string, dateRange string, interval time.Duration) string {
	return fmt.Sprintf(
		"🛫 <b>Программа поиска авиабилетов запущена!</b>\n\n"+
			"Будет проверять прямые рейсы из <b>%s</b> в <b>%s</b> %s.\n"+
			"Поиск будет происходить каждые %d часов.\n\n"+
			"<i>Этот статус будет обновляться с результатами поиска.</i>",
		utils.CityName(origin), utils.CityName(destination), dateRange, int(interval.Hours()))
}

// CycleStarted is the status text at the beginning of a search cycle
func CycleStarted(start time.Time, dateRange string) string {
	return fmt.Sprintf(
		"🛫 <b>Программа поиска авиабилетов</b>\n\n"+
			"🔍 Начат цикл поиска рейсов: %s\n"+
			"🗓 Проверяемые даты: %s\n\n"+
			"<i>Статус будет обновляться...</i>",
		utils.FormatTimeRu(start), dateRange)
}

// CycleFinished is the final status text with cycle statistics
func CycleFinished(start, end time.Time, dateRange string, interval time.Duration, stats *entity.SearchStats) string {
	duration := end.Sub(start)
	return fmt.Sprintf(
		"🛫 <b>Программа поиска авиабилетов</b>\n\n"+
			"✅ <b>Цикл поиска завершен!</b>\n"+
			"🕒 Начало: %s\n"+
			"🕕 Окончание: %s\n"+
			"⏱ Длительность: %d минут %d секунд\n"+
			"🗓 Проверяемые даты: %s\n\n"+
			"%s\n"+
			"🔄 Следующий цикл через <b>%d часов</b>",
		utils.FormatTimeRu(start),
		utils.FormatTimeRu(end),
		int(duration.Minutes()), int(duration.Seconds())%60,
		dateRange,
		StatsSummary(stats),
		int(interval.Hours()))
}

// StatsSummary renders per-cycle search statistics
func StatsSummary(stats *entity.SearchStats) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"📊 <b>Статистика поиска:</b>\n"+
			"✓ Проверено дат: %d\n"+
			"✈️ Даты с рейсами: %d\n"+
			"❌ Даты без рейсов: %d\n"+
			"🎫 Всего найдено рейсов: %d\n"+
			"⚠️ Ошибок: %d\n",
		stats.DatesChecked,
		stats.DatesWithFlights,
		stats.DatesWithoutFlights,
		stats.OffersFound,
		stats.Errors)

	if len(stats.FoundDates) > 0 {
		b.WriteString("\n<b>Даты с найденными рейсами:</b>\n")
		for _, date := range stats.FoundDates {
			fmt.Fprintf(&b, "• %s\n", date)
		}
	}
	return b.String()
}

// FoundHeader announces offers found for one departure date
func FoundHeader(count int, date time.Time, origin, destination string) string {
	return fmt.Sprintf("✅ Найдено <b>%d рейсов</b> на <b>%s</b> из %s в %s:",
		count, utils.FormatDateRu(date), utils.CityName(origin), utils.CityName(destination))
}

// OfferMessage renders one flight offer
func OfferMessage(o *entity.Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛫 <b>Рейс %s</b>: %s (%s) → %s (%s)\n",
		o.FlightIATA(),
		utils.CityName(o.Origin), o.OriginAirport,
		utils.CityName(o.Destination), o.DestinationAirport)
	fmt.Fprintf(&b, "🏢 Авиакомпания: %s\n", utils.AirlineName(o.Airline))
	fmt.Fprintf(&b, "🕓 Вылет: %s\n", utils.FormatDateTimeRu(o.DepartureAt))
	if o.Duration > 0 {
		fmt.Fprintf(&b, "⏱ В пути: %s\n", utils.FormatDuration(o.Duration))
	}
	fmt.Fprintf(&b, "💰 Цена: <b>%d %s</b>\n", o.Price, strings.ToUpper(o.Currency))
	if o.Link != "" {
		fmt.Fprintf(&b, "🔗 <a href=\"https://www.aviasales.ru%s\">Купить билет</a>", o.Link)
	}
	return b.String()
}

// Overflow caps a long list of offers
func Overflow(remaining int) string {
	return fmt.Sprintf("... и еще %d рейсов", remaining)
}

// FlightInfoMessage renders the enrichment block for one offer
func FlightInfoMessage(o *entity.Offer, info *entity.FlightInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Дополнительная информация для рейса %s</b>:\n", o.FlightIATA())

	if info.Status != nil {
		fmt.Fprintf(&b, "🚦 <b>Статус рейса</b>: %s\n", *info.Status)
	}
	if info.AircraftICAO != nil {
		fmt.Fprintf(&b, "✈️ <b>Тип самолета</b>: %s\n", *info.AircraftICAO)
	}
	if info.SeatsEconomy != nil {
		fmt.Fprintf(&b, "💺 <b>Мест в эконом-классе</b>: %d\n", *info.SeatsEconomy)
	}
	if info.SeatsBusiness != nil {
		fmt.Fprintf(&b, "💺 <b>Мест в бизнес-классе</b>: %d\n", *info.SeatsBusiness)
	}
	if info.SeatsFirst != nil {
		fmt.Fprintf(&b, "💺 <b>Мест в первом классе</b>: %d\n", *info.SeatsFirst)
	}
	return b.String()
}

// SeatsBanner wraps an enrichment block that carries seat availability
func SeatsBanner(body string) string {
	return fmt.Sprintf("🚨 <b>ИНФОРМАЦИЯ О НАЛИЧИИ МЕСТ:</b> 🚨\n\n%s", body)
}

// SearchError reports a failed date to devlogs
func SearchError(date time.Time, err error) string {
	return fmt.Sprintf(
		"⚠️ <b>Ошибка при поиске рейсов</b>\n\n"+
			"📅 Дата: %s\n"+
			"❌ Ошибка: %s\n\n"+
			"<i>Поиск продолжается...</i>",
		utils.FormatDateRu(date), err.Error())
}

// Stopped is posted to devlogs on shutdown
func Stopped() string {
	return "🛑 <b>Программа поиска авиабилетов остановлена.</b>"
}
