package main

import (
	"net/http"

	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/locale"
	"github.com/protomem/bizcard-pass/internal/phone"
	"github.com/protomem/bizcard-pass/internal/request"
	"github.com/protomem/bizcard-pass/internal/response"
	"github.com/protomem/bizcard-pass/internal/service"
	"github.com/protomem/bizcard-pass/internal/validator"
)

const _passFallbackFilename = "BusinessCard.pkpass"

// Handle Status
// @Summary Server Status
// @Description Check if the server is up and running
// @Tags api
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /status [get]
func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

type responseForm struct {
	Locale           string            `json:"locale"`
	Region           string            `json:"region"`
	PhonePlaceholder string            `json:"phonePlaceholder"`
	MeetingDate      string            `json:"meetingDate"`
	DefaultPlace     *string           `json:"defaultPlace,omitempty"`
	Labels           i18n.FormMessages `json:"labels"`
}

// Handle Form
// @Summary Form Prefill
// @Description Locale, phone placeholder, today's date and default meeting place for the pass form
// @Tags pass
// @Produce json
// @Param Accept-Language header string false "Preferred languages"
// @Success 200 {object} main.responseForm
// @Failure 500 {object} main.responseError "Internal server error"
// @Router /form [get]
func (app *application) handleForm(w http.ResponseWriter, r *http.Request) {
	l := preferredLocale(r)
	msgs := app.catalog.For(l)

	place, ok, err := app.places.Today(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	resp := responseForm{
		Locale:           l.String(),
		Region:           l.Region(),
		PhonePlaceholder: phone.Placeholder(l),
		MeetingDate:      app.places.TodayDate(),
		Labels:           msgs.Form,
	}
	if ok {
		resp.DefaultPlace = &place
	}

	if err := response.JSON(w, http.StatusOK, resp); err != nil {
		app.serverError(w, r, err)
	}
}

type requestSetLocale struct {
	Locale string `json:"locale"`
}

type responseSetLocale struct {
	Locale string `json:"locale"`
}

// Handle Set Locale
// @Summary Set Locale
// @Description Store the preferred UI language in the NEXT_LOCALE cookie
// @Tags api
// @Accept json
// @Produce json
// @Param input body main.requestSetLocale true "Locale code"
// @Success 200 {object} main.responseSetLocale
// @Failure 400 {object} main.responseError "Unsupported locale"
// @Router /locale [post]
func (app *application) handleSetLocale(w http.ResponseWriter, r *http.Request) {
	msgs := app.catalog.For(preferredLocale(r))

	var input requestSetLocale
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, msgs.API.UnsupportedLocale)
		return
	}

	var v validator.Validator
	if validateRequestSetLocale(&v, input); v.HasErrors() {
		app.failedValidation(w, r, msgs.API.UnsupportedLocale, v)
		return
	}

	l, _ := locale.Parse(input.Locale)
	http.SetCookie(w, localeCookie(l))

	if err := response.JSON(w, http.StatusOK, responseSetLocale{Locale: l.String()}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestIssuePass struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	MeetingPlace string `json:"meetingPlace"`
	MeetingDate  string `json:"meetingDate"`
}

// Handle Issue Pass
// @Summary Issue Pass
// @Description Record a visitor and return a signed Apple Wallet pass
// @Tags pass
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce application/vnd.apple.pkpass,json
// @Param Accept-Language header string false "Preferred languages"
// @Param input body main.requestIssuePass true "Visitor data"
// @Success 200 {file} file "Signed pass"
// @Failure 400 {object} main.responseError "Missing fields, invalid phone or date"
// @Failure 500 {object} main.responseError "Internal server error"
// @Router /pass [post]
func (app *application) handleIssuePass(w http.ResponseWriter, r *http.Request) {
	l := headerLocale(r)
	msgs := app.catalog.For(l)

	input, err := decodePassRequest(w, r)
	if err != nil {
		app.requestLogger(r).Debug("failed to decode pass request", "error", err)
		app.badRequest(w, r, msgs.API.PassFieldsError)
		return
	}

	var v validator.Validator
	if validateRequestIssuePass(&v, input); v.HasErrors() {
		app.failedValidation(w, r, msgs.API.PassFieldsError, v)
		return
	}

	art, err := app.issuer.Issue(r.Context(), service.PassRequest{
		Name:         input.Name,
		Phone:        input.Phone,
		MeetingPlace: input.MeetingPlace,
		MeetingDate:  input.MeetingDate,
		Locale:       l,
	})
	if err != nil {
		app.serviceError(w, r, msgs, err)
		return
	}

	if err := response.Attachment(w, art.ContentType, _passFallbackFilename, art.Filename, art.Data); err != nil {
		app.requestLogger(r).Warn("failed to write pass", "error", err)
	}
}

type requestSetDefault struct {
	Password  string `json:"password"`
	EventDate string `json:"eventDate"`
	Place     string `json:"place"`
}

type responseSetDefault struct {
	Success bool `json:"success"`
}

// Handle Set Default Place
// @Summary Set Default Place
// @Description Set the default meeting place for a date
// @Tags admin
// @Accept json
// @Produce json
// @Param input body main.requestSetDefault true "Admin password, date and place"
// @Success 200 {object} main.responseSetDefault
// @Failure 400 {object} main.responseError "Missing fields"
// @Failure 401 {object} main.responseError "Invalid password"
// @Failure 500 {object} main.responseError "Internal server error"
// @Router /set-default [post]
func (app *application) handleSetDefault(w http.ResponseWriter, r *http.Request) {
	msgs := app.headerMessages(r)

	var input requestSetDefault
	if err := request.DecodeJSON(w, r, &input); err != nil {
		// An unreadable body carries no password, so the admin checks answer it.
		app.requestLogger(r).Debug("failed to decode set default request", "error", err)
		input = requestSetDefault{}
	}

	if _, err := app.places.SetDefault(r.Context(), input.Password, input.EventDate, input.Place); err != nil {
		app.serviceError(w, r, msgs, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseSetDefault{Success: true}); err != nil {
		app.serverError(w, r, err)
	}
}
