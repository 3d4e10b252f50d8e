package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionSettings(t *testing.T) {
	assert.Equal(t, 0.2, VersionATS.Settings().Temperature)
	assert.Equal(t, 0.5, VersionCoverLetter.Settings().Temperature)
	assert.Equal(t, VersionSettings{Temperature: 0.3}, Version("unknown").Settings())
}

func TestParseDocumentType(t *testing.T) {
	d, ok := ParseDocumentType(" Cover ")
	require.True(t, ok)
	assert.Equal(t, DocumentCover, d)
	assert.Equal(t, VersionCoverLetter, d.Version())
	assert.Equal(t, "Cover_Letter", d.FileStem())

	_, ok = ParseDocumentType("memo")
	assert.False(t, ok)
}

func TestAttemptOutcomeReason(t *testing.T) {
	assert.Equal(t, "http error 500", AttemptOutcome{Kind: OutcomeHTTPError, StatusCode: 500}.Reason())
	assert.Equal(t, "rate limited (429): slow down", AttemptOutcome{Kind: OutcomeRateLimited, Detail: "slow down"}.Reason())
	assert.Equal(t, "success", AttemptOutcome{Kind: OutcomeSuccess, Detail: "ignored"}.Reason())
}

func TestProfileRecordSerializesAllKeys(t *testing.T) {
	data, err := json.Marshal(NewProfileRecord())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, 11)
	assert.Equal(t, []any{}, m[ProfileKeySkills])
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := NewSession()
	profile := NewProfileRecord()
	profile.Skills = []string{"Go"}
	s.Profile = &profile
	s.Form = &GenerationForm{Documents: []DocumentType{DocumentATS}}
	s.Documents[DocumentATS] = &GeneratedDocument{Content: "a"}

	c := s.Clone()
	c.Profile.Skills[0] = "Rust"
	c.Form.Documents[0] = DocumentCover
	c.Documents[DocumentATS].Content = "b"

	assert.Equal(t, "Go", s.Profile.Skills[0])
	assert.Equal(t, DocumentATS, s.Form.Documents[0])
	assert.Equal(t, "a", s.Documents[DocumentATS].Content)
}
