package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validator validates structs
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a struct using `validate` tags
func (v *Validator) Validate(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validate expects a struct")
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("validate")

		if tag == "" {
			continue
		}

		if err := v.validateField(field, tag); err != nil {
			return fmt.Errorf("%s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// validateField validates a single field
func (v *Validator) validateField(field reflect.Value, tag string) error {
	rules := strings.Split(tag, ",")

	// Optional fields skip remaining rules when unset
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			for _, rule := range rules {
				if rule == "required" {
					return fmt.Errorf("field is required")
				}
			}
			return nil
		}
		field = field.Elem()
	}

	for _, rule := range rules {
		parts := strings.SplitN(rule, "=", 2)
		ruleName := parts[0]
		arg := ""
		if len(parts) == 2 {
			arg = parts[1]
		}

		switch ruleName {
		case "required":
			if field.IsZero() {
				return fmt.Errorf("field is required")
			}

		case "email":
			if field.Kind() == reflect.String {
				email := field.String()
				at := strings.Index(email, "@")
				if at <= 0 || at == len(email)-1 {
					return fmt.Errorf("invalid email format")
				}
			}

		case "min":
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			if below, size := compare(field, n); below {
				return fmt.Errorf("must be at least %s, got %s", arg, size)
			}

		case "max":
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			if above, size := exceeds(field, n); above {
				return fmt.Errorf("must be at most %s, got %s", arg, size)
			}

		case "oneof":
			if field.Kind() == reflect.String {
				value := field.String()
				if value == "" {
					continue
				}
				allowed := strings.Fields(strings.ReplaceAll(arg, "|", " "))
				found := false
				for _, a := range allowed {
					if value == a {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("must be one of [%s]", strings.Join(allowed, " "))
				}
			}
		}
	}

	return nil
}

// compare reports whether the field is below the limit. Strings, slices and
// maps compare by length, numbers by value.
func compare(field reflect.Value, limit float64) (bool, string) {
	switch field.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return float64(field.Len()) < limit, strconv.Itoa(field.Len())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()) < limit, strconv.FormatInt(field.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return field.Float() < limit, strconv.FormatFloat(field.Float(), 'f', -1, 64)
	}
	return false, ""
}

// exceeds reports whether the field is above the limit
func exceeds(field reflect.Value, limit float64) (bool, string) {
	switch field.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return float64(field.Len()) > limit, strconv.Itoa(field.Len())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()) > limit, strconv.FormatInt(field.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return field.Float() > limit, strconv.FormatFloat(field.Float(), 'f', -1, 64)
	}
	return false, ""
}
