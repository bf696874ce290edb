package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct tag validation and wraps failures in
// httpx.ErrValidation so handlers map them to 400 responses.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", httpx.ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
