package services

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/generate_request.json
var generateRequestSchema string

var generateSchemaLoader = gojsonschema.NewStringLoader(generateRequestSchema)

// ValidateGenerateRequest checks a generate request body against its JSON
// Schema. Every violation is listed in the returned error.
func ValidateGenerateRequest(body []byte) error {
	res, err := gojsonschema.Validate(generateSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.Wrapf(ErrInvalidRequest, "malformed body: %v", err)
	}
	if res.Valid() {
		return nil
	}

	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return errors.Wrap(ErrInvalidRequest, strings.Join(problems, "; "))
}
