package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"rag-chat-be/pkg/rag"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tag validation and reports the failing fields
// as a *rag.ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]string, 0, len(validationErrs))
	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
		messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return &rag.ValidationError{
		Field:   strings.Join(fields, ","),
		Message: strings.Join(messages, "; "),
	}
}
