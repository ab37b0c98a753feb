package templates

import (
	"testing"
	"time"

	"farewatch-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestOfferMessage(t *testing.T) {
	o := &entity.Offer{
		Origin:             "MOW",
		Destination:        "LED",
		OriginAirport:      "SVO",
		DestinationAirport: "LED",
		Price:              3000,
		Currency:           "rub",
		Airline:            "SU",
		FlightNumber:       "30",
		DepartureAt:        "2024-06-05T10:30:00+03:00",
		Duration:           85,
		Link:               "/search/MOW0506LED1",
	}

	msg := OfferMessage(o)
	assert.Contains(t, msg, "Рейс SU30")
	assert.Contains(t, msg, "Москва (SVO)")
	assert.Contains(t, msg, "Санкт-Петербург (LED)")
	assert.Contains(t, msg, "Аэрофлот")
	assert.Contains(t, msg, "5 июня 2024")
	assert.Contains(t, msg, "3000 RUB")
	assert.Contains(t, msg, "1 ч 25 мин")
	assert.Contains(t, msg, "https://www.aviasales.ru/search/MOW0506LED1")
}

func TestOfferMessage_UnknownCodesDegradeToRaw(t *testing.T) {
	o := &entity.Offer{
		Origin:       "XXX",
		Destination:  "YYY",
		Price:        100,
		Currency:     "eur",
		Airline:      "Q9",
		FlightNumber: "1",
		DepartureAt:  "2024-06-05T10:30:00Z",
	}

	msg := OfferMessage(o)
	assert.Contains(t, msg, "XXX")
	assert.Contains(t, msg, "YYY")
	assert.Contains(t, msg, "Q9")
}

func TestStatsSummary(t *testing.T) {
	stats := &entity.SearchStats{
		DatesChecked:        10,
		DatesWithFlights:    2,
		DatesWithoutFlights: 7,
		OffersFound:         5,
		Errors:              1,
		FoundDates:          []string{"5 июня 2024", "7 июня 2024"},
	}

	summary := StatsSummary(stats)
	assert.Contains(t, summary, "Проверено дат: 10")
	assert.Contains(t, summary, "Даты с рейсами: 2")
	assert.Contains(t, summary, "Всего найдено рейсов: 5")
	assert.Contains(t, summary, "Ошибок: 1")
	assert.Contains(t, summary, "• 5 июня 2024")
}

func TestStatsSummary_NoFoundDatesOmitsList(t *testing.T) {
	summary := StatsSummary(entity.NewSearchStats())
	assert.NotContains(t, summary, "Даты с найденными рейсами")
}

func TestStartupMentionsRouteAndInterval(t *testing.T) {
	msg := Startup("MOW", "LED", "с 1 по 10 июня 2024", 6*time.Hour)
	assert.Contains(t, msg, "Москва")
	assert.Contains(t, msg, "Санкт-Петербург")
	assert.Contains(t, msg, "с 1 по 10 июня 2024")
	assert.Contains(t, msg, "каждые 6 часов")
}

func TestFlightInfoMessage_SkipsAbsentFields(t *testing.T) {
	status := "active"
	o := &entity.Offer{Airline: "SU", FlightNumber: "30"}

	msg := FlightInfoMessage(o, &entity.FlightInfo{Status: &status})
	assert.Contains(t, msg, "рейса SU30")
	assert.Contains(t, msg, "active")
	assert.NotContains(t, msg, "Мест")
}
