package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/metrics"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/pass"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

type fakeSubmissionStore struct {
	mu      sync.Mutex
	rows    []model.Submission
	serials map[string]struct{}
	err     error
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{serials: make(map[string]struct{})}
}

func (s *fakeSubmissionStore) Insert(_ context.Context, dto database.InsertSubmissionDTO) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return model.Submission{}, s.err
	}
	if _, ok := s.serials[dto.SerialNumber]; ok {
		return model.Submission{}, model.NewError("submission", model.ErrExists)
	}
	s.serials[dto.SerialNumber] = struct{}{}

	sub := model.Submission{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Name:         dto.Name,
		Phone:        dto.Phone,
		MeetingPlace: dto.MeetingPlace,
		MeetingDate:  dto.MeetingDate,
		SerialNumber: dto.SerialNumber,
	}
	s.rows = append(s.rows, sub)
	return sub, nil
}

func (s *fakeSubmissionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type fakePlaceStore struct {
	mu     sync.Mutex
	places map[string]model.DefaultPlace
	err    error
}

func newFakePlaceStore() *fakePlaceStore {
	return &fakePlaceStore{places: make(map[string]model.DefaultPlace)}
}

func (s *fakePlaceStore) GetByDate(_ context.Context, eventDate time.Time) (model.DefaultPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return model.DefaultPlace{}, s.err
	}
	place, ok := s.places[eventDate.Format(DateLayout)]
	if !ok {
		return model.DefaultPlace{}, model.NewError("defaultPlace", model.ErrNotFound)
	}
	return place, nil
}

func (s *fakePlaceStore) Upsert(_ context.Context, dto database.UpsertDefaultPlaceDTO) (model.DefaultPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return model.DefaultPlace{}, s.err
	}

	key := dto.EventDate.Format(DateLayout)
	place, ok := s.places[key]
	if !ok {
		place = model.DefaultPlace{ID: uuid.New(), CreatedAt: time.Now(), EventDate: dto.EventDate}
	}
	place.Place = dto.Place
	place.UpdatedAt = time.Now()
	s.places[key] = place
	return place, nil
}

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []model.Submission
	msgs     []i18n.Messages
	err      error
}

func (r *fakeRenderer) Render(_ context.Context, sub model.Submission, msgs i18n.Messages) (pass.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return pass.Artifact{}, r.err
	}
	r.rendered = append(r.rendered, sub)
	r.msgs = append(r.msgs, msgs)
	return pass.Artifact{
		Data:        []byte(sub.SerialNumber),
		Filename:    msgs.Pass.Filename + ".pkpass",
		ContentType: pass.ContentType,
	}, nil
}
