package domain

import (
	"time"

	"github.com/google/uuid"
)

// Grade is the letter grade printed on a certificate.
type Grade string

// Possible grades, best first.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
)

// gradeBand is one row of the grading step function.
type gradeBand struct {
	min   int
	grade Grade
}

// gradeBands maps a score to a letter grade, evaluated highest-first with
// inclusive lower bounds. The thresholds are fixed to the 30-question batch
// scale; batches of a different size are graded against the same table.
var gradeBands = []gradeBand{
	{30, GradeAPlus},
	{27, GradeA},
	{25, GradeBPlus},
	{22, GradeB},
	{18, GradeCPlus},
	{15, GradeC},
}

// certificateValidity is how long an issued certificate stays valid.
const certificateValidityMonths = 3

// GradeForScore maps a score to its letter grade. Scores below every band
// fall through to C.
func GradeForScore(score int) Grade {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return GradeC
}

// Certificate is the immutable record issued for a finished session.
// Exactly one certificate is created per finished session, at the moment of
// finishing. The application never mutates or deletes issued certificates;
// expiry is informational only.
type Certificate struct {
	ID        uuid.UUID `json:"id"`
	IssuedAt  time.Time `json:"date"`
	ExpiresAt time.Time `json:"expiryDate"`
	FileName  string    `json:"fileName"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Grade     Grade     `json:"grade"`
}

// NewCertificate issues a certificate for the given result. The expiry date
// is the issue date plus three months.
func NewCertificate(fileName string, score, total int, now time.Time) Certificate {
	issued := now.UTC()
	return Certificate{
		ID:        uuid.New(),
		IssuedAt:  issued,
		ExpiresAt: issued.AddDate(0, certificateValidityMonths, 0),
		FileName:  fileName,
		Score:     score,
		Total:     total,
		Grade:     GradeForScore(score),
	}
}
