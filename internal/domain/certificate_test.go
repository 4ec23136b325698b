package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeForScore(t *testing.T) {
	cases := []struct {
		score int
		want  Grade
	}{
		{30, GradeAPlus},
		{29, GradeA},
		{27, GradeA},
		{26, GradeBPlus},
		{25, GradeBPlus},
		{24, GradeB},
		{22, GradeB},
		{21, GradeCPlus},
		{18, GradeCPlus},
		{17, GradeC},
		{15, GradeC},
		{14, GradeC},
		{1, GradeC},
		{0, GradeC},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeForScore(tc.score), "score %d", tc.score)
	}
}

// Grades must never improve as the score drops.
func TestGradeMonotonicity(t *testing.T) {
	rank := map[Grade]int{
		GradeAPlus: 6,
		GradeA:     5,
		GradeBPlus: 4,
		GradeB:     3,
		GradeCPlus: 2,
		GradeC:     1,
	}

	prev := rank[GradeForScore(30)]
	for score := 29; score >= 0; score-- {
		current := rank[GradeForScore(score)]
		assert.LessOrEqual(t, current, prev, "grade improved when score dropped to %d", score)
		prev = current
	}
}

func TestNewCertificate(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	cert := NewCertificate("biology.pdf", 27, 30, now)

	assert.NotEqual(t, uuid.Nil, cert.ID)
	assert.Equal(t, now, cert.IssuedAt)
	assert.Equal(t, now.AddDate(0, 3, 0), cert.ExpiresAt)
	assert.Equal(t, "biology.pdf", cert.FileName)
	assert.Equal(t, 27, cert.Score)
	assert.Equal(t, 30, cert.Total)
	assert.Equal(t, GradeA, cert.Grade)
}

func TestNewCertificateIDsAreUnique(t *testing.T) {
	now := time.Now()
	a := NewCertificate("f.pdf", 10, 30, now)
	b := NewCertificate("f.pdf", 10, 30, now)
	require.NotEqual(t, a.ID, b.ID)
}
