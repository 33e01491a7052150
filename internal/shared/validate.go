package shared

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

// Validate is the process-wide validator instance.
var Validate = validator.New()

// ValidateStruct runs validator tags on form and wraps failures in the
// validation sentinel so handlers answer 400.
func ValidateStruct(form any) error {
	if err := Validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
