package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/models"
)

// Global validator instance
var validate = newValidator()

// fieldMessages overrides the generated message for fields clients show verbatim
var fieldMessages = map[string]string{
	"content":     "Message content must be between 1 and 1000 characters",
	"receiverId":  "Invalid receiver ID",
	"messageType": "Invalid message type",
	"caseDetails": "Case details must be between 10 and 1000 characters",
	"serviceId":   "Invalid service ID",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct validates s based on its tags and returns one FieldError per failure
func ValidateStruct(s interface{}) []models.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		zap.S().Errorw("unexpected validation error", "error", err)
		return []models.FieldError{{Type: "field", Msg: "Invalid value", Location: "body"}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Type:     "field",
			Msg:      formatFieldError(fe),
			Path:     fe.Field(),
			Location: "body",
			Value:    fe.Value(),
		})
	}
	return out
}

// formatFieldError converts validator errors to human-readable messages
func formatFieldError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "mongodb":
		return fmt.Sprintf("%s must be a valid id", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidationFailed writes the 400 validation envelope
func ValidationFailed(w http.ResponseWriter, errs []models.FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(models.ValidationErrorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
