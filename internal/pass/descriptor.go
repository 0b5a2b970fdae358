package pass

// Descriptor is the pass.json document of a store card.
type Descriptor struct {
	FormatVersion      int    `json:"formatVersion"`
	PassTypeIdentifier string `json:"passTypeIdentifier"`
	SerialNumber       string `json:"serialNumber"`
	TeamIdentifier     string `json:"teamIdentifier"`
	OrganizationName   string `json:"organizationName"`
	Description        string `json:"description"`
	LogoText           string `json:"logoText,omitempty"`

	ForegroundColor string `json:"foregroundColor"`
	BackgroundColor string `json:"backgroundColor"`
	LabelColor      string `json:"labelColor"`

	StoreCard Fields `json:"storeCard"`
}

type Fields struct {
	PrimaryFields   []Field `json:"primaryFields,omitempty"`
	SecondaryFields []Field `json:"secondaryFields,omitempty"`
	AuxiliaryFields []Field `json:"auxiliaryFields,omitempty"`
	BackFields      []Field `json:"backFields,omitempty"`
}

type Field struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

const (
	formatVersion = 1

	foregroundColor = "rgb(128, 190, 122)"
	backgroundColor = "rgb(29, 37, 27)"
	labelColor      = "rgb(128, 190, 122)"
)
