package main

import (
	"mime"
	"net/http"
	"strings"

	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/locale"
	"github.com/protomem/bizcard-pass/internal/request"
)

const _cookieMaxAge = 365 * 24 * 60 * 60

// headerLocale picks the locale from Accept-Language only.
func headerLocale(r *http.Request) locale.Locale {
	return locale.FromAcceptLanguage(r.Header.Get("Accept-Language"))
}

// preferredLocale honours the NEXT_LOCALE cookie before Accept-Language.
func preferredLocale(r *http.Request) locale.Locale {
	var stored string
	if cookie, err := r.Cookie(locale.CookieName); err == nil {
		stored = cookie.Value
	}
	return locale.Resolve(stored, r.Header.Get("Accept-Language"))
}

func (app *application) headerMessages(r *http.Request) i18n.Messages {
	return app.catalog.For(headerLocale(r))
}

func localeCookie(l locale.Locale) *http.Cookie {
	return &http.Cookie{
		Name:     locale.CookieName,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   _cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

// decodePassRequest reads the pass fields from a JSON body or from an
// urlencoded or multipart form.
func decodePassRequest(w http.ResponseWriter, r *http.Request) (requestIssuePass, error) {
	var input requestIssuePass

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		err := request.DecodeJSON(w, r, &input)
		return input, err

	case mediaType == "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, request.MaxBodyBytes)
		if err := r.ParseMultipartForm(request.MaxBodyBytes); err != nil {
			return input, err
		}

	default:
		r.Body = http.MaxBytesReader(w, r.Body, request.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return input, err
		}
	}

	input.Name = r.PostFormValue("name")
	input.Phone = r.PostFormValue("phone")
	input.MeetingPlace = r.PostFormValue("meetingPlace")
	input.MeetingDate = r.PostFormValue("meetingDate")

	return input, nil
}
