package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected bool
	}{
		{"Simple valid email", "test@example.com", true},
		{"Email with subdomain", "user@mail.example.com", true},
		{"Email with dots in local part", "user.name@example.com", true},
		{"Email with plus", "user+tag@example.com", true},
		{"Two letter TLD", "user@example.co", true},
		{"Email with dash in domain", "user@ex-ample.com", true},

		{"Missing @", "userexample.com", false},
		{"Missing domain", "user@", false},
		{"Missing local part", "@example.com", false},
		{"Missing TLD", "user@example", false},
		{"Double @", "user@@example.com", false},
		{"Space in email", "user @example.com", false},
		{"Consecutive dots in domain", "user@example..com", false},
		{"Starts with dot", ".user@example.com", false},
		{"Ends with dot", "user.@example.com", false},
		{"Empty string", "", false},
		{"Domain starts with dash", "user@-example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidEmail(tt.email))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{"Regular address", "payer@example.com", "pa***@example.com"},
		{"Short local part", "ab@example.com", "ab@example.com"},
		{"Not an email", "no-at-sign", "no-at-sign"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskEmail(tt.email))
		})
	}
}
