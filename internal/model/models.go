package model

import (
	"time"

	"github.com/google/uuid"
)

type ID = uuid.UUID

const SerialPrefix = "CARD-"

// Submission is a single pass request. Rows are append-only.
type Submission struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	MeetingPlace string    `json:"meetingPlace" db:"meeting_place"`
	MeetingDate  time.Time `json:"meetingDate" db:"meeting_date"`

	SerialNumber string `json:"serialNumber" db:"serial_number"`
}

type DefaultPlace struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	EventDate time.Time `json:"eventDate" db:"event_date"`
	Place     string    `json:"place" db:"place"`
}

// NewSerialNumber returns CARD-<random uuid>. The unique index on
// visitors.serial_number is what actually guarantees uniqueness.
func NewSerialNumber() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return SerialPrefix + id.String(), nil
}
