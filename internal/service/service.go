// Package service holds the pass issuing and default place workflows.
// It sits between the HTTP handlers and the stores.
package service

import (
	"context"
	"time"

	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/pass"
)

// Message keys reported with service errors.
const (
	KeyPassFields    = "api.passFieldsError"
	KeyPassGenerate  = "api.passGenerateError"
	KeyDate          = "api.dateError"
	KeyServer        = "api.serverError"
	KeyInvalidPasswd = "api.invalidPassword"
	KeyMissingFields = "api.missingFields"
	KeySave          = "api.saveError"
)

const DateLayout = "2006-01-02"

type SubmissionStore interface {
	Insert(ctx context.Context, dto database.InsertSubmissionDTO) (model.Submission, error)
}

type PlaceStore interface {
	GetByDate(ctx context.Context, eventDate time.Time) (model.DefaultPlace, error)
	Upsert(ctx context.Context, dto database.UpsertDefaultPlaceDTO) (model.DefaultPlace, error)
}

type Renderer interface {
	Render(ctx context.Context, sub model.Submission, msgs i18n.Messages) (pass.Artifact, error)
}

var (
	_ SubmissionStore = (*database.SubmissionDAO)(nil)
	_ PlaceStore      = (*database.DefaultPlaceDAO)(nil)
	_ Renderer        = (*pass.Renderer)(nil)
)

// calendarDay drops the clock part of t as seen in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
