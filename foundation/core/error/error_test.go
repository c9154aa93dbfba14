// File: error_test.go
// Title: Core Error Tests
// Description: Tests for Error construction, wrapping, code lookup across
//              wrapped chains and JSON output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("boom")

	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() is empty")
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() is zero")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("variable %q is not defined", "x")
	if want := `variable "x" is not defined`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeTemplateSyntax, SeverityLow},
		{CodeNotConnected, SeverityLow},
		{CodeConnectionFailed, SeverityMedium},
		{CodeDatabaseError, SeverityHigh},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWithSeverity_OverridesCode(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeTemplateSyntax)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}

	base := errors.New("disk full")
	err := Wrap(base, "append history").WithCode(CodeDatabaseError)

	if want := "append history: disk full"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is(err, base) = false, want true")
	}
	if err.RootCause() != base {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), base)
	}
}

func TestWrap_InheritsCodeAndDetails(t *testing.T) {
	inner := New("no such variable").WithCode(CodeUndefinedVariable).WithDetail("name", "x")
	outer := Wrap(inner, "render")

	if outer.Code() != CodeUndefinedVariable {
		t.Errorf("Code() = %v, want %v", outer.Code(), CodeUndefinedVariable)
	}
	if v, ok := outer.Detail("name"); !ok || v != "x" {
		t.Errorf("Detail(name) = %v, %v, want x, true", v, ok)
	}
}

func TestHasCode(t *testing.T) {
	coded := New("not connected").WithCode(CodeNotConnected)
	wrapped := fmt.Errorf("send: %w", coded)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", coded, CodeNotConnected, true},
		{"through fmt wrap", wrapped, CodeNotConnected, true},
		{"inner code under outer", Wrap(coded, "x").WithCode(CodeInternal), CodeNotConnected, true},
		{"other code", coded, CodeDatabaseError, false},
		{"plain error", errors.New("x"), CodeNotConnected, false},
		{"nil", nil, CodeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndSeverity(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("x").WithCode(CodeDatabaseError))

	if got := GetCode(err); got != CodeDatabaseError {
		t.Errorf("GetCode() = %v, want %v", got, CodeDatabaseError)
	}
	if got := GetSeverity(err); got != SeverityHigh {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityHigh)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
}

func TestDetails_ReturnsCopy(t *testing.T) {
	err := New("x").WithDetails(map[string]interface{}{"a": 1})
	d := err.Details()
	d["a"] = 2

	if v, _ := err.Detail("a"); v != 1 {
		t.Errorf("Detail(a) = %v, want 1", v)
	}
}

func TestString(t *testing.T) {
	err := Wrap(errors.New("refused"), "dial").
		WithCode(CodeConnectionFailed).
		WithOperation("connection.Connect").
		WithDetail("url", "ws://localhost").
		WithDetail("attempt", 1)

	s := err.String()
	for _, want := range []string{
		"Error: dial",
		"Code: CONNECTION_FAILED",
		"Severity: medium",
		"Operation: connection.Connect",
		"Details: {attempt=1, url=ws://localhost}",
		"Cause: refused",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("bad").WithCode(CodeInvalidArgument).WithOperation("functions.Call")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var got map[string]interface{}
	if jerr := json.Unmarshal(data, &got); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if got["code"] != "INVALID_ARGUMENT" {
		t.Errorf("code = %v, want INVALID_ARGUMENT", got["code"])
	}
	if got["severity"] != "low" {
		t.Errorf("severity = %v, want low", got["severity"])
	}
	if got["operation"] != "functions.Call" {
		t.Errorf("operation = %v, want functions.Call", got["operation"])
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeTemplateSyntax, "template"},
		{CodeUnknownCommand, "command"},
		{CodeNotConnected, "connection"},
		{CodeDatabaseError, "storage"},
		{CodeInvalidConfig, "configuration"},
		{CodeInternal, "generic"},
	}

	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCode_IsValid(t *testing.T) {
	if !CodeArgumentCount.IsValid() {
		t.Error("CodeArgumentCount.IsValid() = false")
	}
	if Code("NOPE").IsValid() {
		t.Error(`Code("NOPE").IsValid() = true`)
	}
}
