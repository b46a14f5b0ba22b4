// Package validate runs the local form checks that short-circuit before
// any network call. Failures surface through the same error-slot
// convention the containers use.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"amparo/internal/domain"
)

// ValidationError aggregates per-field messages from a failed local check.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Error keys carry the wire field name, not the Go field name.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	sets := map[string][]string{
		"sector":          domain.Sectors,
		"staffrole":       domain.Roles,
		"department":      domain.Departments,
		"resposta":        domain.RespostaLevels,
		"participacao":    domain.ParticipacaoLevels,
		"autonomia":       domain.AutonomiaLevels,
		"placementstatus": domain.PlacementStatuses,
		"avaliacaotipo":   {domain.AvaliacaoFirst, domain.AvaliacaoSecond},
	}
	for tag, set := range sets {
		allowed := set
		_ = val.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return domain.InSet(fl.Field().String(), allowed)
		})
	}
	return val
}

// Struct validates a tagged record and returns a *ValidationError on
// failure.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fieldName(fe)] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=4"`
}

// Login checks the login form before the credential scan.
func Login(email, password string) error {
	return Struct(loginForm{Email: email, Password: password})
}

// PasswordConfirmation checks the staff registration password pair.
func PasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return &ValidationError{Fields: map[string]string{"password": "passwords do not match"}}
	}
	return nil
}

// fieldName lowercases untagged fields (the ad-hoc login form); domain
// structs already resolve to their json names.
func fieldName(fe validator.FieldError) string {
	f := fe.Field()
	return strings.ToLower(f[:1]) + f[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "sector", "staffrole", "department", "resposta", "participacao",
		"autonomia", "placementstatus", "avaliacaotipo":
		return "is not an allowed value"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
