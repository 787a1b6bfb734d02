package config

import (
	"os"
	"reflect"
	"testing"
)

func TestGetEnvAsSlice(t *testing.T) {
	testCases := []struct {
		name     string
		envValue string
		expected []string
	}{
		{
			name:     "Simple comma-separated values",
			envValue: "10.0.0.1,10.0.0.2",
			expected: []string{"10.0.0.1", "10.0.0.2"},
		},
		{
			name:     "Values with spaces",
			envValue: " 10.0.0.1 , 10.0.0.2 ",
			expected: []string{"10.0.0.1", "10.0.0.2"},
		},
		{
			name:     "Single value",
			envValue: "127.0.0.1",
			expected: []string{"127.0.0.1"},
		},
		{
			name:     "Empty parts",
			envValue: "10.0.0.1,,10.0.0.3",
			expected: []string{"10.0.0.1", "10.0.0.3"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Setenv("TEST_STRING_SLICE", tc.envValue)
			defer os.Unsetenv("TEST_STRING_SLICE")

			result := getEnvAsSlice("TEST_STRING_SLICE", nil)

			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsSliceDefault(t *testing.T) {
	os.Unsetenv("TEST_STRING_SLICE")

	fallback := []string{"localhost"}
	result := getEnvAsSlice("TEST_STRING_SLICE", fallback)

	if !reflect.DeepEqual(result, fallback) {
		t.Errorf("Expected default %v, got %v", fallback, result)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	testCases := []struct {
		name     string
		envValue string
		set      bool
		expected int
	}{
		{
			name:     "Valid integer",
			envValue: "250",
			set:      true,
			expected: 250,
		},
		{
			name:     "Integer with spaces",
			envValue: " 42 ",
			set:      true,
			expected: 42,
		},
		{
			name:     "Invalid integer falls back",
			envValue: "not-a-number",
			set:      true,
			expected: 500,
		},
		{
			name:     "Unset falls back",
			set:      false,
			expected: 500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				os.Setenv("TEST_INT", tc.envValue)
				defer os.Unsetenv("TEST_INT")
			} else {
				os.Unsetenv("TEST_INT")
			}

			result := getEnvAsInt("TEST_INT", 500)

			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_NAME", "PORT", "HOST"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DBName != "kindsteps" {
		t.Errorf("Expected default DB name kindsteps, got %s", cfg.DBName)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.MapMaxPins != 500 {
		t.Errorf("Expected default map max pins 500, got %d", cfg.MapMaxPins)
	}
}
