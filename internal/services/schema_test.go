package services

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerateRequest(t *testing.T) {
	valid := `{"name":"Jane Doe","email":"jane@example.com","phone":"123","background":"Go, Postgres",
		"job_description":"Backend role","documents":["ats","cover"]}`
	assert.NoError(t, ValidateGenerateRequest([]byte(valid)))

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing name", `{"email":"a@b.c","phone":"1","background":"x","job_description":"y","documents":["ats"]}`, "name"},
		{"bad email", `{"name":"J","email":"nope","phone":"1","background":"x","job_description":"y","documents":["ats"]}`, "email"},
		{"no documents", `{"name":"J","email":"a@b.c","phone":"1","background":"x","job_description":"y","documents":[]}`, "documents"},
		{"unknown document", `{"name":"J","email":"a@b.c","phone":"1","background":"x","job_description":"y","documents":["memo"]}`, "documents"},
		{"empty background", `{"name":"J","email":"a@b.c","phone":"1","background":"","job_description":"y","documents":["ats"]}`, "background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenerateRequest([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateGenerateRequestMalformed(t *testing.T) {
	err := ValidateGenerateRequest([]byte(`{"name":`))
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}
