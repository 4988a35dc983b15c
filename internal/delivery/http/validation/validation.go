package validation

import (
	"errors"
	"strings"

	"learnmatch/internal/domain/event"
	"learnmatch/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the request tags used by the API registered.
func New() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func Register(v *validator.Validate) {
	_ = v.RegisterValidation("skill_level", ValidateSkillLevel)
	_ = v.RegisterValidation("event_kind", ValidateEventKind)
}

// ValidateSkillLevel accepts beginner, intermediate and advanced in any case.
func ValidateSkillLevel(fl validator.FieldLevel) bool {
	_, ok := usecase.ParseSkillLevel(fl.Field().String())
	return ok
}

func ValidateEventKind(fl validator.FieldLevel) bool {
	_, err := event.ParseKind(fl.Field().String())
	return err == nil
}

// Fields flattens validation errors into field -> tag pairs for the response body.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}
