package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/phone"
)

type SubmissionInput struct {
	Name         string
	Phone        string
	MeetingPlace string
	MeetingDate  time.Time
}

// Recorder writes one submission row per accepted pass request.
type Recorder struct {
	logger *slog.Logger
	store  SubmissionStore
	serial func() (string, error)
}

func NewRecorder(logger *slog.Logger, store SubmissionStore) *Recorder {
	return &Recorder{
		logger: logger.With("service", "recorder"),
		store:  store,
		serial: model.NewSerialNumber,
	}
}

func (r *Recorder) Record(ctx context.Context, in SubmissionInput) (model.Submission, error) {
	name := strings.TrimSpace(in.Name)
	place := strings.TrimSpace(in.MeetingPlace)

	if name == "" || place == "" || in.MeetingDate.IsZero() {
		return model.Submission{}, model.NewKeyedError(
			model.NewError("submission", model.ErrValidation), KeyPassFields)
	}
	if !phone.IsE164(in.Phone) {
		return model.Submission{}, model.NewKeyedError(
			model.NewError("submission", model.ErrPhoneInvalid), phone.ErrorKey)
	}

	serial, err := r.serial()
	if err != nil {
		return model.Submission{}, r.persistenceError(err)
	}

	sub, err := r.store.Insert(ctx, database.InsertSubmissionDTO{
		Name:         name,
		Phone:        in.Phone,
		MeetingPlace: place,
		MeetingDate:  in.MeetingDate,
		SerialNumber: serial,
	})
	if err != nil {
		return model.Submission{}, r.persistenceError(err)
	}

	r.logger.Debug("submission recorded", "serialNumber", sub.SerialNumber)

	return sub, nil
}

func (r *Recorder) persistenceError(err error) error {
	return model.NewKeyedError(
		model.NewError("submission", fmt.Errorf("%w: %w", model.ErrPersistence, err)), KeyPassGenerate)
}
