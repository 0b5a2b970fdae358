package main

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/protomem/bizcard-pass/internal/database"
	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/metrics"
	"github.com/protomem/bizcard-pass/internal/model"
	"github.com/protomem/bizcard-pass/internal/pass"
	"github.com/protomem/bizcard-pass/internal/service"
)

type memSubmissions struct {
	mu   sync.Mutex
	rows []model.Submission
}

func (s *memSubmissions) Insert(_ context.Context, dto database.InsertSubmissionDTO) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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

func (s *memSubmissions) all() []model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Submission(nil), s.rows...)
}

type memPlaces struct {
	mu     sync.Mutex
	places map[string]model.DefaultPlace
}

func (s *memPlaces) GetByDate(_ context.Context, eventDate time.Time) (model.DefaultPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	place, ok := s.places[eventDate.Format(service.DateLayout)]
	if !ok {
		return model.DefaultPlace{}, model.NewError("defaultPlace", model.ErrNotFound)
	}
	return place, nil
}

func (s *memPlaces) Upsert(_ context.Context, dto database.UpsertDefaultPlaceDTO) (model.DefaultPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	place := model.DefaultPlace{ID: uuid.New(), EventDate: dto.EventDate, Place: dto.Place, UpdatedAt: time.Now()}
	s.places[dto.EventDate.Format(service.DateLayout)] = place
	return place, nil
}

type stubSigner struct{}

func (stubSigner) Sign(_ context.Context, b pass.Bundle) ([]byte, error) {
	return []byte("signed:" + b.Descriptor.SerialNumber), nil
}

type testApp struct {
	*application
	submissions *memSubmissions
	places      *memPlaces
	location    *time.Location
}

type testOptions struct {
	adminPassword string
	signer        pass.Signer
	origins       []string
}

func newTestApp(t *testing.T, opts testOptions) *testApp {
	t.Helper()

	location, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := i18n.Load()
	require.NoError(t, err)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	submissions := &memSubmissions{}
	places := &memPlaces{places: make(map[string]model.DefaultPlace)}

	renderer := pass.NewRenderer(pass.Config{
		PassTypeIdentifier: "pass.test.card",
		TeamIdentifier:     "ABCDE12345",
		Location:           location,
		Profile:            pass.Profile{LogoText: "card.test", Phone: "+82 10-0000-0000"},
	}, pass.Assets{"icon.png": []byte("icon")}, opts.signer)

	var cfg config
	cfg.HTTPHost = "localhost"
	cfg.HTTPPort = 8080
	cfg.AdminPassword = opts.adminPassword
	cfg.CORS.AllowedOrigins = opts.origins

	app := &application{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  m,
		catalog:  catalog,
		issuer: service.NewIssuer(logger,
			service.NewRecorder(logger, submissions), renderer,
			catalog, m, location),
		places: service.NewPlaces(logger, places, m, opts.adminPassword, location),
	}

	return &testApp{
		application: app,
		submissions: submissions,
		places:      places,
		location:    location,
	}
}

func (ta *testApp) do(t *testing.T, method, target, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ta.routes().ServeHTTP(w, r)
	return w
}

func withLanguage(lang string) map[string]string {
	return map[string]string{"Accept-Language": lang}
}
