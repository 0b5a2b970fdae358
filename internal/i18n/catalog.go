// Package i18n holds the message catalog. Every supported locale ships a
// YAML file under locales/ that must define every key of Messages.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/protomem/bizcard-pass/internal/locale"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

type Messages struct {
	LanguageName string       `yaml:"languageName" validate:"required"`
	DateFormat   string       `yaml:"dateFormat" validate:"required,datetemplate"`
	Pass         PassMessages `yaml:"pass"`
	API          APIMessages  `yaml:"api"`
	Form         FormMessages `yaml:"form"`

	flat map[string]string
}

type PassMessages struct {
	OrganizationName  string `yaml:"organizationName" validate:"required"`
	Description       string `yaml:"description" validate:"required"`
	Filename          string `yaml:"filename" validate:"required"`
	PhoneLabel        string `yaml:"phoneLabel" validate:"required"`
	EmailLabel        string `yaml:"emailLabel" validate:"required"`
	HomepageLabel     string `yaml:"homepageLabel" validate:"required"`
	HomepageURL       string `yaml:"homepageUrl" validate:"required"`
	LinkedinLabel     string `yaml:"linkedinLabel" validate:"required"`
	InstagramLabel    string `yaml:"instagramLabel" validate:"required"`
	KakaoLabel        string `yaml:"kakaoLabel" validate:"required"`
	MeetingPlaceLabel string `yaml:"meetingPlaceLabel" validate:"required"`
	MeetingDateLabel  string `yaml:"meetingDateLabel" validate:"required"`
	LastUpdatedLabel  string `yaml:"lastUpdatedLabel" validate:"required"`
}

type APIMessages struct {
	PassFieldsError   string `yaml:"passFieldsError" validate:"required"`
	PassGenerateError string `yaml:"passGenerateError" validate:"required"`
	PhoneError        string `yaml:"phoneError" validate:"required"`
	DateError         string `yaml:"dateError" validate:"required"`
	ServerError       string `yaml:"serverError" validate:"required"`
	InvalidPassword   string `yaml:"invalidPassword" validate:"required"`
	MissingFields     string `yaml:"missingFields" validate:"required"`
	SaveError         string `yaml:"saveError" validate:"required"`
	UnsupportedLocale string `yaml:"unsupportedLocale" validate:"required"`
	NotFound          string `yaml:"notFound" validate:"required"`
	MethodNotAllowed  string `yaml:"methodNotAllowed" validate:"required"`
}

type FormMessages struct {
	Title        string `yaml:"title" json:"title" validate:"required"`
	Description  string `yaml:"description" json:"description" validate:"required"`
	NameLabel    string `yaml:"nameLabel" json:"nameLabel" validate:"required"`
	PhoneLabel   string `yaml:"phoneLabel" json:"phoneLabel" validate:"required"`
	PlaceLabel   string `yaml:"placeLabel" json:"placeLabel" validate:"required"`
	DateLabel    string `yaml:"dateLabel" json:"dateLabel" validate:"required"`
	SubmitButton string `yaml:"submitButton" json:"submitButton" validate:"required"`
}

// Text looks a message up by its dotted YAML path, e.g. "api.phoneError".
// Unknown keys return the key itself.
func (m Messages) Text(key string) string {
	if s, ok := m.flat[key]; ok {
		return s
	}
	return key
}

// FormatDate fills the {year}/{month}/{day} placeholders of DateFormat.
// Month and day are not zero padded.
func (m Messages) FormatDate(t time.Time) string {
	return FormatDate(m.DateFormat, t)
}

func FormatDate(template string, t time.Time) string {
	return strings.NewReplacer(
		"{year}", strconv.Itoa(t.Year()),
		"{month}", strconv.Itoa(int(t.Month())),
		"{day}", strconv.Itoa(t.Day()),
	).Replace(template)
}

type Catalog struct {
	messages map[locale.Locale]Messages
}

// Load parses and validates the catalog of every supported locale.
func Load() (*Catalog, error) {
	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{messages: make(map[locale.Locale]Messages, len(locale.Supported()))}

	var errs []error
	for _, l := range locale.Supported() {
		msgs, err := loadLocale(validate, l)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		catalog.messages[l] = msgs
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return catalog, nil
}

// For returns the messages of l, falling back to the default locale.
func (c *Catalog) For(l locale.Locale) Messages {
	if msgs, ok := c.messages[l]; ok {
		return msgs
	}
	return c.messages[locale.Default]
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("datetemplate", validateDateTemplate); err != nil {
		return nil, err
	}
	return validate, nil
}

func loadLocale(validate *validator.Validate, l locale.Locale) (Messages, error) {
	raw, err := localeFiles.ReadFile("locales/" + l.String() + ".yaml")
	if err != nil {
		return Messages{}, fmt.Errorf("locale %s: %w", l, err)
	}

	msgs, err := parseMessages(validate, raw)
	if err != nil {
		return Messages{}, fmt.Errorf("locale %s: %w", l, err)
	}

	return msgs, nil
}

func parseMessages(validate *validator.Validate, raw []byte) (Messages, error) {
	var msgs Messages
	if err := yaml.Unmarshal(raw, &msgs); err != nil {
		return Messages{}, err
	}
	if err := validate.Struct(msgs); err != nil {
		return Messages{}, err
	}

	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return Messages{}, err
	}
	msgs.flat = make(map[string]string)
	flatten("", tree, msgs.flat)

	return msgs, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(path, v, out)
		case string:
			out[path] = v
		}
	}
}

func validateDateTemplate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.Contains(s, "{year}") &&
		strings.Contains(s, "{month}") &&
		strings.Contains(s, "{day}")
}
