package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, JSONWithHeaders(w, http.StatusCreated, JSONObject{"ok": true}, http.Header{"X-Test": {"1"}}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("X-Test"))

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body["ok"])
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="BusinessCard.pkpass"; filename*=UTF-8''%EC%A1%B0%EC%84%B1%ED%98%84%20%EB%AA%85%ED%95%A8.pkpass`,
		ContentDisposition("BusinessCard.pkpass", "조성현 명함.pkpass"),
	)
	assert.Equal(t,
		`attachment; filename="BusinessCard.pkpass"; filename*=UTF-8''Sunghyun%20Cho%20Business%20Card.pkpass`,
		ContentDisposition("BusinessCard.pkpass", "Sunghyun Cho Business Card.pkpass"),
	)
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, Attachment(w, "application/vnd.apple.pkpass", "BusinessCard.pkpass", "card.pkpass", []byte("zip")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.apple.pkpass", w.Header().Get("Content-Type"))
	assert.Equal(t, "3", w.Header().Get("Content-Length"))
	assert.Equal(t, "zip", w.Body.String())
}

func TestMetricsResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	mw := NewMetricsResponseWriter(rec)

	mw.WriteHeader(http.StatusTeapot)
	mw.WriteHeader(http.StatusInternalServerError)
	_, err := mw.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, mw.StatusCode)
	assert.Equal(t, 5, mw.BytesCount)
	assert.Equal(t, rec, mw.Unwrap())

	implicit := NewMetricsResponseWriter(httptest.NewRecorder())
	_, _ = implicit.Write([]byte("x"))
	assert.Equal(t, http.StatusOK, implicit.StatusCode)
}
