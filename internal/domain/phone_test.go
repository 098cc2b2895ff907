package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plus seven", input: "+79261234567", want: "+7 (926) 123-45-67"},
		{name: "leading eight", input: "89261234567", want: "+7 (926) 123-45-67"},
		{name: "bare ten digits", input: "9261234567", want: "+7 (926) 123-45-67"},
		{name: "formatted input", input: "+7 (926) 123-45-67", want: "+7 (926) 123-45-67"},
		{name: "with spaces and dashes", input: "8 926 123-45-67", want: "+7 (926) 123-45-67"},
		{name: "extra digits truncated", input: "+7926123456789", want: "+7 (926) 123-45-67"},
		{name: "partial", input: "926", want: "+7 (926)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_Stable(t *testing.T) {
	// Нормализация идемпотентна: сопоставление по телефону зависит от этого
	once := NormalizePhone("89261234567")
	assert.Equal(t, once, NormalizePhone(once))
}
