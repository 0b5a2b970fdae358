package main

import (
	"github.com/protomem/bizcard-pass/internal/locale"
	"github.com/protomem/bizcard-pass/internal/validator"
)

// Validation rules

const (
	_maxNameRunes  = 100
	_maxPlaceRunes = 200
	_maxPhoneRunes = 32
	_maxDateRunes  = 40
)

func validateRequestIssuePass(v *validator.Validator, input requestIssuePass) {
	v.CheckField(validator.MaxRunes(input.Name, _maxNameRunes), "name", "is too long")
	v.CheckField(validator.MaxRunes(input.Phone, _maxPhoneRunes), "phone", "is too long")
	v.CheckField(validator.MaxRunes(input.MeetingPlace, _maxPlaceRunes), "meetingPlace", "is too long")
	v.CheckField(validator.MaxRunes(input.MeetingDate, _maxDateRunes), "meetingDate", "is too long")
}

func validateRequestSetLocale(v *validator.Validator, input requestSetLocale) {
	v.CheckField(validator.NotBlank(input.Locale), "locale", "cannot be blank")

	l, _ := locale.Parse(input.Locale)
	v.CheckField(validator.PermittedValue(l, locale.Supported()...), "locale", "is not supported")
}
