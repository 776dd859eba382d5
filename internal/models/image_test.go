package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionSelections(t *testing.T) {
	s := NewSessionRepository()
	assert.False(t, s.Ready())

	s.SetCoverPath("cover.png")
	assert.False(t, s.Ready())
	s.SetSecretPath("secret.jpg")
	assert.True(t, s.Ready())
	assert.Equal(t, "cover.png", s.CoverPath())
	assert.Equal(t, "secret.jpg", s.SecretPath())

	s.Clear()
	assert.False(t, s.Ready())
	assert.Empty(t, s.History())
}

func TestSessionHistory(t *testing.T) {
	s := NewSessionRepository()
	s.Record(OperationRecord{Operation: OperationHide, OutputPath: "a.png"})
	s.Record(OperationRecord{Operation: OperationMetrics, PSNR: 40})
	s.Record(OperationRecord{Operation: OperationHide, OutputPath: "b.png", Err: errors.New("boom")})

	latest, ok := s.Latest(OperationHide)
	assert.True(t, ok)
	assert.Equal(t, "b.png", latest.OutputPath)
	assert.False(t, latest.At.IsZero())

	_, ok = s.Latest(OperationExtract)
	assert.False(t, ok)

	for i := 0; i < 60; i++ {
		s.Record(OperationRecord{Operation: OperationExtract})
	}
	assert.Len(t, s.History(), 50)
}

func TestProcessingStateRejectsOverlap(t *testing.T) {
	r := NewProcessingStateRepository()
	assert.True(t, r.StartProcessing(OperationHide))
	assert.False(t, r.StartProcessing(OperationExtract))
	assert.Equal(t, OperationHide, r.GetState().Operation)

	r.UpdateProgress("Embedding", 0.5)
	assert.Equal(t, "Embedding", r.GetState().CurrentStage)

	r.CompleteProcessing()
	assert.False(t, r.IsProcessing())
	assert.True(t, r.StartProcessing(OperationExtract))
	r.FailProcessing()
	assert.Equal(t, "Failed", r.GetState().CurrentStage)
}
