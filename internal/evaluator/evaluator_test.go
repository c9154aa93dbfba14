package evaluator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
	"github.com/msto63/wsterm/internal/functions"
	"github.com/msto63/wsterm/internal/variables"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()

	vars := variables.NewStore()
	for name, value := range map[string][]byte{
		"name": []byte("world"),
		"raw":  {0xff, 0x00},
	} {
		if err := vars.Set(name, value); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}

	funcs := functions.NewDefaultRegistry(functions.Options{
		Rand: bytes.NewReader(make([]byte, 64)),
	})
	return New(vars, funcs)
}

func TestRender_Text(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"empty", "", ""},
		{"variable", "hello ${name}!", "hello world!"},
		{"escapes", `a\\b\$c\r\n\0`, "a\\b$c\r\n\x00"},
		{"ascii byte", `\x41`, "A"},
		{"codepoint", `\u{1f600}`, "\U0001F600"},
		{"function", "${byteRange(0x61, 0x63)}", "abc"},
		{"char range", "${charRange(0x3b1, 0x3b2)}", "αβ"},
	}

	e := newTestEvaluator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.input, ModeText)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_Binary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"high bytes", `\xff\x00\x80`, []byte{0xff, 0x00, 0x80}},
		{"binary variable", "${raw}", []byte{0xff, 0x00}},
		{"codepoint is utf8 encoded", `\u{e9}`, []byte{0xc3, 0xa9}},
		{"random bytes", "${randomBytes(3)}", []byte{0, 0, 0}},
		{"empty", "", []byte{}},
	}

	e := newTestEvaluator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.input, ModeBinary)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mode     Mode
		wantCode wsterror.Code
	}{
		{"syntax", `\q`, ModeText, wsterror.CodeTemplateSyntax},
		{"unterminated reference", "${name", ModeBinary, wsterror.CodeTemplateSyntax},
		{"undefined variable", "${missing}", ModeText, wsterror.CodeUndefinedVariable},
		{"undefined function", "${missing()}", ModeText, wsterror.CodeUndefinedFunction},
		{"argument count", "${time(1)}", ModeText, wsterror.CodeArgumentCount},
		{"invalid argument", "${byteRange(300)}", ModeBinary, wsterror.CodeInvalidArgument},
		{"invalid utf8 in text", `\xff`, ModeText, wsterror.CodeInvalidInput},
		{"binary variable in text", "${raw}", ModeText, wsterror.CodeInvalidInput},
		{"codepoint above unicode", `\u{110000}`, ModeBinary, wsterror.CodeInvalidInput},
		{"surrogate codepoint", `\u{d800}`, ModeText, wsterror.CodeInvalidInput},
	}

	e := newTestEvaluator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Render(tt.input, tt.mode)
			if !wsterror.HasCode(err, tt.wantCode) {
				t.Errorf("Render(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestRender_SyntaxErrorKeepsParseError(t *testing.T) {
	_, err := newTestEvaluator(t).Render("${", ModeText)

	var perr *tmplexpr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v does not wrap a *tmplexpr.ParseError", err)
	}
	if !errors.Is(err, tmplexpr.ErrInvalidTemplateExpression) {
		t.Error("errors.Is(err, ErrInvalidTemplateExpression) = false")
	}
}

func TestEvaluate_NilSources(t *testing.T) {
	e := New(nil, nil)

	if _, err := e.EvaluateBinary(tmplexpr.MustParse("${x}")); !wsterror.HasCode(err, wsterror.CodeUndefinedVariable) {
		t.Errorf("error = %v, want UNDEFINED_VARIABLE", err)
	}
	if _, err := e.EvaluateBinary(tmplexpr.MustParse("${f()}")); !wsterror.HasCode(err, wsterror.CodeUndefinedFunction) {
		t.Errorf("error = %v, want UNDEFINED_FUNCTION", err)
	}
}

func TestMode_String(t *testing.T) {
	if ModeText.String() != "text" || ModeBinary.String() != "binary" {
		t.Errorf("Mode strings = %q, %q", ModeText, ModeBinary)
	}
}
