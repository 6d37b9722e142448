// Package validator holds the pure input checks shared by the recipe and
// account handlers. A Validator carries no mutable state and is safe for
// concurrent use; build one per process and pass it around.
package validator

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/pageza/recipes/backend/internal/types"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// Validator checks well-formedness of caller input
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the recipe field rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank: strings must contain a non-space rune, slices at least one element
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// notBlank is validators.NotBlank with the whitespace set of isBlank for strings
func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		return !isBlank(fl.Field().String())
	}
	return validators.NotBlank(fl)
}

// isBlank reports whether s is empty or made only of whitespace. Non-breaking
// spaces (U+00A0, U+2007, U+202F) and NEL (U+0085) are content, not whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !isWhitespace(r) }) < 0
}

func isWhitespace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// ValidateInteger parses s as a base-10 signed 32-bit integer
func (v *Validator) ValidateInteger(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// ValidateRecipeInput reports whether name, category and description are
// non-blank and ingredients and directions are non-empty
func (v *Validator) ValidateRecipeInput(recipe *types.RecipeRequest) bool {
	if recipe == nil {
		return false
	}
	return v.validate.Struct(recipe) == nil
}

// ValidateSearchParameters reports whether exactly one of category and name
// was supplied. Presence is what counts here, not blankness.
func (v *Validator) ValidateSearchParameters(category, name *string) bool {
	return (category == nil) != (name == nil)
}

// ValidateEmail reports whether email has a loose local@domain.tld shape
func (v *Validator) ValidateEmail(email string) bool {
	if isBlank(email) {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidatePassword reports whether password is non-blank and long enough
func (v *Validator) ValidatePassword(password string) bool {
	if isBlank(password) {
		return false
	}
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
