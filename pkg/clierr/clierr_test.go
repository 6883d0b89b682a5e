package clierr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "invalid input", nil),
			wantMsg: "invalid input",
		},
		{
			name:    "error with underlying error",
			err:     New(Auth, "session expired", errors.New("network timeout")),
			wantMsg: "session expired",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantNil bool
	}{
		{
			name:    "no underlying error",
			err:     New(Validation, "test", nil),
			wantNil: true,
		},
		{
			name:    "with underlying error",
			err:     New(API, "test", errors.New("underlying")),
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Unwrap()
			if (got == nil) != tt.wantNil {
				t.Errorf("Unwrap() nil = %v, want nil = %v", got == nil, tt.wantNil)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		errorType   Type
		message     string
		underlying  error
		wantType    Type
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "validation error",
			errorType:   Validation,
			message:     "invalid job ID",
			underlying:  nil,
			wantType:    Validation,
			wantMessage: "invalid job ID",
			wantErr:     false,
		},
		{
			name:        "not found error",
			errorType:   NotFound,
			message:     "job not found",
			underlying:  errors.New("sql: no rows"),
			wantType:    NotFound,
			wantMessage: "job not found",
			wantErr:     true,
		},
		{
			name:        "auth error",
			errorType:   Auth,
			message:     "not logged in",
			underlying:  errors.New("no credential stored"),
			wantType:    Auth,
			wantMessage: "not logged in",
			wantErr:     true,
		},
		{
			name:        "api error",
			errorType:   API,
			message:     "request failed",
			underlying:  errors.New("connection reset"),
			wantType:    API,
			wantMessage: "request failed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.errorType, tt.message, tt.underlying)

			if got.Type != tt.wantType {
				t.Errorf("New().Type = %v, want %v", got.Type, tt.wantType)
			}

			if got.Message != tt.wantMessage {
				t.Errorf("New().Message = %v, want %v", got.Message, tt.wantMessage)
			}

			if (got.Err != nil) != tt.wantErr {
				t.Errorf("New().Err nil = %v, want nil = %v", got.Err == nil, !tt.wantErr)
			}
		})
	}
}

func TestError_ErrorsIsAs(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	cliErr := New(Auth, "login required", underlyingErr)

	if !errors.Is(cliErr, underlyingErr) {
		t.Error("errors.Is should find underlying error")
	}

	var cliErrTarget *Error
	if !errors.As(cliErr, &cliErrTarget) {
		t.Error("errors.As should find Error type")
	}

	if cliErrTarget.Type != Auth {
		t.Errorf("errors.As Type = %v, want %v", cliErrTarget.Type, Auth)
	}
}

func TestError_Types(t *testing.T) {
	types := []Type{Validation, NotFound, Auth, API, Internal}
	expected := []string{"validation", "not_found", "auth", "api", "internal"}

	for i, typ := range types {
		if string(typ) != expected[i] {
			t.Errorf("Type constant = %v, want %v", typ, expected[i])
		}
	}
}
