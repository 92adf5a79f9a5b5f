package schema

import (
	"strings"
	"testing"
)

func TestValidator(t *testing.T) {
	validator, err := NewValidator()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		config    map[string]interface{}
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid config",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/pre-commit/pre-commit-hooks",
						"rev":  "v4.4.0",
						"hooks": []interface{}{
							map[string]interface{}{"id": "check-yaml"},
							map[string]interface{}{"id": "trailing-whitespace"},
						},
					},
				},
			},
			wantError: false,
		},
		{
			name: "valid local block",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "local",
						"hooks": []interface{}{
							map[string]interface{}{
								"id":             "pytest-check",
								"entry":          "pytest",
								"language":       "system",
								"pass_filenames": false,
								"always_run":     true,
							},
						},
					},
				},
			},
			wantError: false,
		},
		{
			name:      "missing repos",
			config:    map[string]interface{}{},
			wantError: true,
			errorMsg:  "missing properties",
		},
		{
			name: "repo block without hooks",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/psf/black",
						"rev":  "23.3.0",
					},
				},
			},
			wantError: true,
			errorMsg:  "missing properties",
		},
		{
			name: "empty hooks list",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo":  "https://github.com/psf/black",
						"rev":   "23.3.0",
						"hooks": []interface{}{},
					},
				},
			},
			wantError: true,
			errorMsg:  "minimum 1 items",
		},
		{
			name: "hook without id",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/psf/black",
						"rev":  "23.3.0",
						"hooks": []interface{}{
							map[string]interface{}{"name": "black"},
						},
					},
				},
			},
			wantError: true,
			errorMsg:  "missing properties",
		},
		{
			name: "rev with wrong type",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/psf/black",
						"rev":  23.3,
						"hooks": []interface{}{
							map[string]interface{}{"id": "black"},
						},
					},
				},
			},
			wantError: true,
			errorMsg:  "expected string",
		},
		{
			name: "args with non-string element",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/pycqa/flake8",
						"rev":  "6.0.0",
						"hooks": []interface{}{
							map[string]interface{}{
								"id":   "flake8",
								"args": []interface{}{"--max-line-length", 100},
							},
						},
					},
				},
			},
			wantError: true,
			errorMsg:  "expected string",
		},
		{
			name: "unknown repo key",
			config: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo":   "https://github.com/psf/black",
						"rev":    "23.3.0",
						"branch": "main",
						"hooks": []interface{}{
							map[string]interface{}{"id": "black"},
						},
					},
				},
			},
			wantError: true,
			errorMsg:  "not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.config)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestValidatorReportsEveryViolation(t *testing.T) {
	validator, err := NewValidator()
	if err != nil {
		t.Fatal(err)
	}

	config := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/pycqa/isort",
				"rev":  "5.12.0",
				"hooks": []interface{}{
					map[string]interface{}{"name": "isort"},
				},
			},
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "23.3.0",
			},
		},
	}

	err = validator.Validate(config)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	msg := err.Error()
	if !strings.Contains(msg, "/repos/0/hooks/0") {
		t.Errorf("expected error to locate the first violation, got: %s", msg)
	}
	if !strings.Contains(msg, "/repos/1") {
		t.Errorf("expected error to locate the second violation, got: %s", msg)
	}
}
