package pass

import (
	"context"
	"fmt"
	"time"

	"github.com/protomem/bizcard-pass/internal/i18n"
	"github.com/protomem/bizcard-pass/internal/model"
)

const ContentType = "application/vnd.apple.pkpass"

// Profile is the card owner's contact data shown on every pass.
type Profile struct {
	LogoText  string
	Phone     string
	Email     string
	Homepage  string
	Linkedin  string
	Instagram string
	Kakao     string
}

// DefaultProfile fills any Profile value left empty. Homepage stays empty so
// the catalog's localized homepage URL is used.
var DefaultProfile = Profile{
	LogoText:  "cho.sh",
	Phone:     "+82 10-7332-9837",
	Email:     "hey@cho.sh",
	Linkedin:  "linkedin.com/in/anaclumos",
	Instagram: "instagram.com/anaclumos",
	Kakao:     "https://go.cho.sh/kakao",
}

func (p Profile) withDefaults() Profile {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&p.LogoText, DefaultProfile.LogoText)
	fill(&p.Phone, DefaultProfile.Phone)
	fill(&p.Email, DefaultProfile.Email)
	fill(&p.Homepage, DefaultProfile.Homepage)
	fill(&p.Linkedin, DefaultProfile.Linkedin)
	fill(&p.Instagram, DefaultProfile.Instagram)
	fill(&p.Kakao, DefaultProfile.Kakao)
	return p
}

type Config struct {
	PassTypeIdentifier string
	TeamIdentifier     string
	Profile            Profile
	Location           *time.Location
}

type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

type Renderer struct {
	conf   Config
	assets Assets
	signer Signer
	now    func() time.Time
}

// NewRenderer builds a renderer. A nil signer means the signing material
// was not configured; Render then fails with model.ErrMissingCredentials.
func NewRenderer(conf Config, assets Assets, signer Signer) *Renderer {
	if conf.Location == nil {
		conf.Location = time.UTC
	}
	conf.Profile = conf.Profile.withDefaults()

	return &Renderer{
		conf:   conf,
		assets: assets,
		signer: signer,
		now:    time.Now,
	}
}

func (r *Renderer) Render(ctx context.Context, sub model.Submission, msgs i18n.Messages) (Artifact, error) {
	if r.signer == nil || r.conf.PassTypeIdentifier == "" || r.conf.TeamIdentifier == "" {
		return Artifact{}, model.NewError("pass", model.ErrMissingCredentials)
	}

	data, err := r.signer.Sign(ctx, Bundle{
		Descriptor: r.Describe(sub, msgs),
		Assets:     r.assets,
	})
	if err != nil {
		return Artifact{}, model.NewError("pass", fmt.Errorf("%w: %w", model.ErrRender, err))
	}

	return Artifact{
		Data:        data,
		Filename:    msgs.Pass.Filename + ".pkpass",
		ContentType: ContentType,
	}, nil
}

// Describe builds the pass.json document for sub in the language of msgs.
func (r *Renderer) Describe(sub model.Submission, msgs i18n.Messages) Descriptor {
	p := r.conf.Profile

	homepage := p.Homepage
	if homepage == "" {
		homepage = msgs.Pass.HomepageURL
	}

	desc := Descriptor{
		FormatVersion:      formatVersion,
		PassTypeIdentifier: r.conf.PassTypeIdentifier,
		SerialNumber:       sub.SerialNumber,
		TeamIdentifier:     r.conf.TeamIdentifier,
		OrganizationName:   msgs.Pass.OrganizationName,
		Description:        msgs.Pass.Description,
		LogoText:           p.LogoText,
		ForegroundColor:    foregroundColor,
		BackgroundColor:    backgroundColor,
		LabelColor:         labelColor,
	}

	desc.StoreCard.SecondaryFields = []Field{
		{Key: "phone", Label: msgs.Pass.PhoneLabel, Value: p.Phone},
	}

	desc.StoreCard.BackFields = []Field{
		{Key: "email_full", Label: msgs.Pass.EmailLabel, Value: p.Email},
		{Key: "phone_full", Label: msgs.Pass.PhoneLabel, Value: p.Phone},
		{Key: "homepage", Label: msgs.Pass.HomepageLabel, Value: homepage},
		{Key: "linkedin", Label: msgs.Pass.LinkedinLabel, Value: p.Linkedin},
		{Key: "instagram", Label: msgs.Pass.InstagramLabel, Value: p.Instagram},
		{Key: "kakao", Label: msgs.Pass.KakaoLabel, Value: p.Kakao},
		{Key: "meeting_place_back", Label: msgs.Pass.MeetingPlaceLabel, Value: sub.MeetingPlace},
		{Key: "meeting_date_back", Label: msgs.Pass.MeetingDateLabel, Value: msgs.FormatDate(sub.MeetingDate.In(r.conf.Location))},
		{Key: "updated", Label: msgs.Pass.LastUpdatedLabel, Value: msgs.FormatDate(r.now().In(r.conf.Location))},
	}

	return desc
}
