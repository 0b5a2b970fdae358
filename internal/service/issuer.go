package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/locale"
	"github.com/protomem/bizcard-pass/internal/metrics"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/pass"
	"github.com/protomem/bizcard-pass/internal/phone"
)

type PassRequest struct {
	Name         string
	Phone        string
	MeetingPlace string
	MeetingDate  string
	Locale       locale.Locale
}

// Issuer validates a pass request, records it and renders the pass.
type Issuer struct {
	logger   *slog.Logger
	recorder *Recorder
	renderer Renderer
	catalog  *i18n.Catalog
	metrics  *metrics.Metrics
	location *time.Location
}

func NewIssuer(
	logger *slog.Logger,
	recorder *Recorder, renderer Renderer,
	catalog *i18n.Catalog, m *metrics.Metrics,
	location *time.Location,
) *Issuer {
	return &Issuer{
		logger:   logger.With("service", "issuer"),
		recorder: recorder,
		renderer: renderer,
		catalog:  catalog,
		metrics:  m,
		location: location,
	}
}

func (iss *Issuer) Issue(ctx context.Context, req PassRequest) (pass.Artifact, error) {
	logger := iss.logger.With("locale", req.Locale.String())

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.MeetingPlace) == "" || strings.TrimSpace(req.MeetingDate) == "" {
		iss.metrics.IncrementPassFailures(metrics.StageValidation)
		return pass.Artifact{}, model.NewKeyedError(model.NewError("pass", model.ErrValidation), KeyPassFields)
	}

	e164, err := phone.Normalize(req.Phone, req.Locale)
	if err != nil {
		iss.metrics.IncrementPassFailures(metrics.StageValidation)
		return pass.Artifact{}, err
	}

	meetingDate, err := ParseMeetingDate(req.MeetingDate, iss.location)
	if err != nil {
		iss.metrics.IncrementPassFailures(metrics.StageValidation)
		return pass.Artifact{}, model.NewKeyedError(model.NewError("pass", model.ErrValidation), KeyDate)
	}

	sub, err := iss.recorder.Record(ctx, SubmissionInput{
		Name:         req.Name,
		Phone:        e164,
		MeetingPlace: req.MeetingPlace,
		MeetingDate:  meetingDate,
	})
	if err != nil {
		stage := metrics.StagePersistence
		if errors.Is(err, model.ErrValidation) {
			stage = metrics.StageValidation
		}
		iss.metrics.IncrementPassFailures(stage)
		logger.Warn("failed to record submission", "error", err)
		return pass.Artifact{}, err
	}

	art, err := iss.renderer.Render(ctx, sub, iss.catalog.For(req.Locale))
	if err != nil {
		iss.metrics.IncrementPassFailures(metrics.StageRender)
		logger.Error("failed to render pass", "error", err, "serialNumber", sub.SerialNumber)
		return pass.Artifact{}, model.NewKeyedError(err, KeyPassGenerate)
	}

	iss.metrics.IncrementPassesIssued(req.Locale.String())
	logger.Info("pass issued", "serialNumber", sub.SerialNumber)

	return art, nil
}

var meetingDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseMeetingDate accepts RFC 3339 timestamps as well as the date and
// datetime-local forms browsers submit. Values without an offset are read
// in loc.
func ParseMeetingDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	var firstErr error
	for _, layout := range meetingDateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}
