package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string  `json:"name" validate:"required,min=2,max=10"`
	Email  string  `json:"email" validate:"required,email"`
	Status string  `json:"status" validate:"oneof=active|inactive|pending"`
	Day    int     `json:"day" validate:"min=1,max=31"`
	Amount float64 `json:"amount" validate:"min=0"`
	Ref    *string `json:"ref"`
}

func valid() sample {
	return sample{
		Name:   "Maria",
		Email:  "maria@example.com",
		Status: "active",
		Day:    10,
		Amount: 1200,
	}
}

func TestValidateOK(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(valid()))
}

func TestValidatePointerOK(t *testing.T) {
	v := NewValidator()
	s := valid()
	assert.NoError(t, v.Validate(&s))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
	}{
		{"missing name", func(s *sample) { s.Name = "" }},
		{"name too short", func(s *sample) { s.Name = "M" }},
		{"name too long", func(s *sample) { s.Name = "a very long name" }},
		{"missing email", func(s *sample) { s.Email = "" }},
		{"bad email", func(s *sample) { s.Email = "not-an-email" }},
		{"bad status", func(s *sample) { s.Status = "paused" }},
		{"day too small", func(s *sample) { s.Day = 0 }},
		{"day too large", func(s *sample) { s.Day = 32 }},
		{"negative amount", func(s *sample) { s.Amount = -5 }},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			assert.Error(t, v.Validate(s))
		})
	}
}

func TestValidateEmptyOneofAllowed(t *testing.T) {
	v := NewValidator()
	s := valid()
	s.Status = ""
	assert.NoError(t, v.Validate(s))
}

func TestValidateRequiredPointer(t *testing.T) {
	type withPtr struct {
		Ref *string `validate:"required"`
	}

	v := NewValidator()
	assert.Error(t, v.Validate(withPtr{}))

	ref := "contract-7"
	assert.NoError(t, v.Validate(withPtr{Ref: &ref}))
}

func TestValidateNonStruct(t *testing.T) {
	v := NewValidator()
	assert.Error(t, v.Validate("not a struct"))
}
