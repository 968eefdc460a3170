package domain

import "time"

type SubjectKind string

const (
	SubjectKindRenter    SubjectKind = "RENTER"
	SubjectKindGuarantor SubjectKind = "GUARANTOR"
)

// LocationSample is one appended position ping. Rows are never updated after
// insertion except for demoting is_latest when a newer sample arrives.
type LocationSample struct {
	ID          int64       `json:"id"`
	SubjectID   int64       `json:"subject_id"`
	SubjectKind SubjectKind `json:"subject_kind"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	AccuracyM   *float64    `json:"accuracy_m,omitempty"`
	SpeedKPH    *float64    `json:"speed_kph,omitempty"`
	Heading     *float64    `json:"heading,omitempty"`
	IsLatest    bool        `json:"is_latest"`
	RecordedOn  time.Time   `json:"recorded_on"`
}
