package usecase

import (
	"context"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
	"farewatch-service/pkg/utils"
	"farewatch-service/templates"
)

// SearchProcessor runs the fetch-enrich-notify poll cycle. Cycles are strictly
// sequential; every error is contained within the cycle that produced it.
type SearchProcessor struct {
	priceRepo      repository.PriceRepository
	flightInfoRepo repository.FlightInfoRepository // nil when enrichment is disabled
	telegramRepo   repository.TelegramRepository
	logger         logger.Logger
	metrics        *metrics.Metrics

	origin         string
	destination    string
	dates          []time.Time
	dateRangeText  string
	interval       time.Duration
	devlogsTopicID string
	foundTopicID   string

	searchBackoff   utils.Backoff
	datePause       time.Duration
	maxOffersPerMsg int

	// devlogs status message updated as the cycle progresses, 0 when the
	// startup banner could not be delivered
	statusMessageID int64

	wait func(ctx context.Context, d time.Duration) error
}

// NewSearchProcessor creates a new search processor
func NewSearchProcessor(
	cfg *config.Config,
	priceRepo repository.PriceRepository,
	flightInfoRepo repository.FlightInfoRepository,
	telegramRepo repository.TelegramRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *SearchProcessor {
	return &SearchProcessor{
		priceRepo:      priceRepo,
		flightInfoRepo: flightInfoRepo,
		telegramRepo:   telegramRepo,
		logger:         logger,
		metrics:        m,

		origin:         cfg.Origin,
		destination:    cfg.Destination,
		dates:          utils.DateRange(cfg.StartDate, cfg.EndDate),
		dateRangeText:  utils.FormatDateRangeRu(cfg.StartDate, cfg.EndDate),
		interval:       cfg.PollInterval,
		devlogsTopicID: cfg.TelegramDevlogsTopicID,
		foundTopicID:   cfg.TelegramFoundTopicID,

		searchBackoff: utils.Backoff{
			Base:        1 * time.Second,
			Cap:         60 * time.Second,
			MaxAttempts: 3,
		},
		datePause:       1 * time.Second,
		maxOffersPerMsg: 5,

		wait: utils.Wait,
	}
}

// Start posts the startup banner to devlogs and keeps its message ID so the
// cycle can edit it with progress. A delivery failure only disables edits.
func (sp *SearchProcessor) Start(ctx context.Context) {
	banner := templates.Startup(sp.origin, sp.destination, sp.dateRangeText, sp.interval)
	messageID, err := sp.sendDevlogs(ctx, banner)
	if err != nil {
		sp.logger.Error("Failed to send startup message", "error", err)
		return
	}
	sp.statusMessageID = messageID
	sp.logger.Info("Status message created", "messageId", messageID)
}

// Stop posts the shutdown notice to devlogs, best effort
func (sp *SearchProcessor) Stop(ctx context.Context) {
	if _, err := sp.sendDevlogs(ctx, templates.Stopped()); err != nil {
		sp.logger.Error("Failed to send shutdown message", "error", err)
	}
}

// RunCycle performs one full fetch-enrich-notify pass over the date range
func (sp *SearchProcessor) RunCycle(ctx context.Context) error {
	stats := entity.NewSearchStats()
	start := time.Now()
	sp.logger.Info("Starting search cycle", "dates", len(sp.dates))
	sp.updateStatus(ctx, templates.CycleStarted(start, sp.dateRangeText))

	for i, date := range sp.dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			// spacing between dates keeps the pricing API happy
			sp.wait(ctx, sp.datePause)
		}
		departureDate := date.Format("2006-01-02")
		stats.DatesChecked++

		offers, err := sp.searchWithRetry(ctx, departureDate)
		if err != nil {
			stats.RecordError()
			sp.countError("search")
			sp.logger.Error("Flight search abandoned", "date", departureDate, "error", err)
			if _, sendErr := sp.sendDevlogs(ctx, templates.SearchError(date, err)); sendErr != nil {
				sp.logger.Error("Failed to send error message", "error", sendErr)
			}
			continue
		}

		if len(offers) == 0 {
			stats.RecordEmpty()
			sp.logger.Info("No flights found", "date", departureDate)
			continue
		}

		stats.RecordFound(utils.FormatDateRu(date), len(offers))
		sp.notifyOffers(ctx, date, offers)
	}

	end := time.Now()
	if sp.metrics != nil {
		sp.metrics.CyclesTotal.Inc()
		sp.metrics.OffersFound.Add(float64(stats.OffersFound))
		sp.metrics.CycleDuration.Observe(end.Sub(start).Seconds())
	}
	sp.updateStatus(ctx, templates.CycleFinished(start, end, sp.dateRangeText, sp.interval, stats))
	sp.logger.Info("Search cycle finished",
		"offers", stats.OffersFound,
		"errors", stats.Errors,
		"duration", end.Sub(start).String())
	return nil
}

// searchWithRetry calls the pricing API with bounded retries. Only transient
// failures (transport errors, 429, 5xx) are retried; delays strictly increase.
func (sp *SearchProcessor) searchWithRetry(ctx context.Context, departureDate string) ([]entity.Offer, error) {
	for attempt := 1; ; attempt++ {
		offers, err := sp.priceRepo.SearchPrices(ctx, departureDate)
		if err == nil {
			return offers, nil
		}
		if !entity.IsTransient(err) || sp.searchBackoff.Exhausted(attempt) {
			return nil, err
		}

		delay := sp.searchBackoff.Delay(attempt)
		sp.logger.Warn("Flight search failed, retrying",
			"date", departureDate,
			"attempt", attempt,
			"delay", delay.String(),
			"error", err)
		if waitErr := sp.wait(ctx, delay); waitErr != nil {
			return nil, waitErr
		}
	}
}

// notifyOffers posts the found-flights header, per-offer messages in API
// order (capped), and best-effort enrichment blocks
func (sp *SearchProcessor) notifyOffers(ctx context.Context, date time.Time, offers []entity.Offer) {
	header := templates.FoundHeader(len(offers), date, sp.origin, sp.destination)
	if _, err := sp.sendFound(ctx, header); err != nil {
		sp.logger.Error("Failed to send found header", "date", date.Format("2006-01-02"), "error", err)
	}

	for i := range offers {
		if i >= sp.maxOffersPerMsg {
			if _, err := sp.sendFound(ctx, templates.Overflow(len(offers)-sp.maxOffersPerMsg)); err != nil {
				sp.logger.Error("Failed to send overflow message", "error", err)
			}
			break
		}
		if _, err := sp.sendFound(ctx, templates.OfferMessage(&offers[i])); err != nil {
			sp.logger.Error("Failed to send offer message", "flight", offers[i].FlightIATA(), "error", err)
		}
	}

	if sp.flightInfoRepo == nil {
		return
	}
	for i := range offers {
		sp.enrichAndNotify(ctx, &offers[i])
	}
}

// enrichAndNotify looks up live flight data and posts it. Failures degrade
// softly: the offer has already been delivered with its raw codes.
func (sp *SearchProcessor) enrichAndNotify(ctx context.Context, offer *entity.Offer) {
	info, err := sp.flightInfoRepo.GetFlightInfo(ctx, offer.Airline, offer.FlightNumber)
	if err != nil {
		sp.countError("enrich")
		sp.logger.Warn("Flight enrichment failed", "flight", offer.FlightIATA(), "error", err)
		return
	}
	if info == nil {
		sp.logger.Info("No enrichment data for flight", "flight", offer.FlightIATA())
		return
	}

	body := templates.FlightInfoMessage(offer, info)
	if _, err := sp.sendFound(ctx, body); err != nil {
		sp.logger.Error("Failed to send enrichment message", "flight", offer.FlightIATA(), "error", err)
		return
	}
	if info.HasSeatInfo() {
		if _, err := sp.sendFound(ctx, templates.SeatsBanner(body)); err != nil {
			sp.logger.Error("Failed to send seats banner", "flight", offer.FlightIATA(), "error", err)
		}
	}
}

// updateStatus edits the devlogs status message when one exists
func (sp *SearchProcessor) updateStatus(ctx context.Context, text string) {
	if sp.statusMessageID == 0 {
		return
	}
	if err := sp.telegramRepo.EditMessage(ctx, sp.devlogsTopicID, sp.statusMessageID, text); err != nil {
		sp.logger.Error("Failed to update status message", "error", err)
	}
}

func (sp *SearchProcessor) sendFound(ctx context.Context, text string) (int64, error) {
	return sp.send(ctx, sp.foundTopicID, text)
}

func (sp *SearchProcessor) sendDevlogs(ctx context.Context, text string) (int64, error) {
	return sp.send(ctx, sp.devlogsTopicID, text)
}

func (sp *SearchProcessor) send(ctx context.Context, topicID, text string) (int64, error) {
	messageID, err := sp.telegramRepo.SendMessage(ctx, topicID, text)
	if err != nil {
		sp.countError("notify")
		return 0, err
	}
	if sp.metrics != nil {
		sp.metrics.NotificationsSent.Inc()
	}
	return messageID, nil
}

func (sp *SearchProcessor) countError(operation string) {
	if sp.metrics != nil {
		sp.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
