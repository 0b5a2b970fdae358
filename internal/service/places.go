package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/metrics"
	"github.com/protomem/bizcard-pass/internal/model"
)

// Places serves the default meeting place of the current service day and
// lets the admin set it.
type Places struct {
	logger        *slog.Logger
	store         PlaceStore
	metrics       *metrics.Metrics
	adminPassword string
	location      *time.Location
	now           func() time.Time
}

func NewPlaces(logger *slog.Logger, store PlaceStore, m *metrics.Metrics, adminPassword string, location *time.Location) *Places {
	return &Places{
		logger:        logger.With("service", "places"),
		store:         store,
		metrics:       m,
		adminPassword: adminPassword,
		location:      location,
		now:           time.Now,
	}
}

// TodayDate is the current date in the service timezone, YYYY-MM-DD.
func (p *Places) TodayDate() string {
	return p.now().In(p.location).Format(DateLayout)
}

// Today returns the default place for the current service day. A missing
// entry is not an error.
func (p *Places) Today(ctx context.Context) (string, bool, error) {
	place, err := p.store.GetByDate(ctx, calendarDay(p.now(), p.location))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return place.Place, true, nil
}

func (p *Places) SetDefault(ctx context.Context, password, eventDate, place string) (model.DefaultPlace, error) {
	if p.adminPassword == "" {
		p.metrics.IncrementDefaultPlaceWrites("misconfigured")
		return model.DefaultPlace{}, model.NewKeyedError(model.NewError("defaultPlace", model.ErrMissingCredentials), KeyServer)
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(p.adminPassword)) != 1 {
		p.metrics.IncrementDefaultPlaceWrites("unauthorized")
		p.logger.Warn("rejected default place write")
		return model.DefaultPlace{}, model.NewKeyedError(model.NewError("defaultPlace", model.ErrUnauthorized), KeyInvalidPasswd)
	}

	eventDate = strings.TrimSpace(eventDate)
	place = strings.TrimSpace(place)
	if eventDate == "" || place == "" {
		p.metrics.IncrementDefaultPlaceWrites("invalid")
		return model.DefaultPlace{}, model.NewKeyedError(model.NewError("defaultPlace", model.ErrValidation), KeyMissingFields)
	}

	day, err := time.Parse(DateLayout, eventDate)
	if err != nil {
		p.metrics.IncrementDefaultPlaceWrites("invalid")
		return model.DefaultPlace{}, model.NewKeyedError(model.NewError("defaultPlace", model.ErrValidation), KeyDate)
	}

	saved, err := p.store.Upsert(ctx, database.UpsertDefaultPlaceDTO{EventDate: day, Place: place})
	if err != nil {
		p.metrics.IncrementDefaultPlaceWrites("error")
		p.logger.Error("failed to save default place", "error", err, "eventDate", eventDate)
		return model.DefaultPlace{}, model.NewKeyedError(
			model.NewError("defaultPlace", fmt.Errorf("%w: %w", model.ErrPersistence, err)), KeySave)
	}

	p.metrics.IncrementDefaultPlaceWrites("ok")
	p.logger.Info("default place saved", "eventDate", eventDate)

	return saved, nil
}
