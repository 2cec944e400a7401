package config

import (
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	sectionNameRegexp = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min", "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "contains":
		return fmt.Sprintf("must contain the %s placeholder", e.Param())
	case "cidrv4":
		return "must be a valid IPv4 CIDR (e.g. 10.89.0.0/24)"
	case "ipv4":
		return "must be a valid IPv4 address"
	case "section_name":
		return "must consist only of lowercase letters, numbers, and underscores [a-z0-9_]"
	case "cidr6_or_empty":
		return "must be a valid IPv6 CIDR (e.g. fd00:abcd:ef01::/48) or empty"
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For per-network options: the network name (e.g., "webnet")
	FieldPath string // Dot-notation field path (e.g., "general.ula_prefix")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("section_name", validateSectionName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("cidr6_or_empty", validateCIDR6OrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate exposes the shared validator instance so other packages can
// validate their own tagged structs with the same custom validators.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ConvertValidatorErrors converts go-playground/validator errors to the
// ValidationError format used across the application.
func ConvertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	return convertValidatorErrors(err, fieldPrefix, itemName)
}

// Custom validator: UCI-style section name
func validateSectionName(fl validator.FieldLevel) bool {
	return sectionNameRegexp.MatchString(fl.Field().String())
}

// Custom validator: IPv6 CIDR or empty
func validateCIDR6OrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	ip, _, err := net.ParseCIDR(value)
	if err != nil {
		return false
	}
	return ip.To4() == nil
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}
