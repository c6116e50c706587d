// internal/stages/fetch-theme/validation.go
package fetchtheme

import "theme-mapper/internal/common/validation"

// DocumentSchema describes what a usable theme document looks like before
// its references are resolved. Violations are reported, never fatal.
const DocumentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["dataColors"],
	"properties": {
		"fontSize": {"type": ["number", "string"]},
		"backgroundColor": {"type": "string"},
		"dataColors": {
			"type": "object",
			"required": ["primaryColor", "othersColor"],
			"properties": {
				"primaryColor": {"type": "string"},
				"othersColor": {"type": "string"}
			}
		},
		"scales": {"type": ["object", "array"]},
		"palettes": {"type": ["object", "array"]},
		"_variables": {"type": "object"}
	}
}`

var documentValidator = validation.MustNewValidator(DocumentSchema)

// CheckDocument returns one message per schema violation.
func CheckDocument(document interface{}) ([]string, error) {
	result, err := documentValidator.Validate(document)
	if err != nil {
		return nil, err
	}
	if result.Valid {
		return nil, nil
	}
	return result.GetErrorMessages(), nil
}
