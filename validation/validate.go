package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	platePattern = regexp.MustCompile(`^[A-Z0-9]{1,8}$`)

	ErrInvalidPlate = errors.New("invalid plate: expected 1-8 letters or digits")
)

func Validate(data interface{}) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(data)
}

// NormalizePlate uppercases the raw plate and strips hyphens and whitespace.
// The result must match ^[A-Z0-9]{1,8}$ or the lookup is rejected before any
// remote call is made.
func NormalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, "-", "")
	plate = strings.ReplaceAll(plate, " ", "")
	if !platePattern.MatchString(plate) {
		return "", ErrInvalidPlate
	}
	return plate, nil
}

func IsValidPlate(plate string) bool {
	_, err := NormalizePlate(plate)
	return err == nil
}
