package connection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateProtocol(t *testing.T) {
	tests := []struct {
		name string
		want []rune
	}{
		{"chat", nil},
		{"protocol1.example.com", nil},
		{"v2.bin~x!", nil},
		{"a b", []rune{' '}},
		{"x(y)z(", []rune{'(', ')'}},
		{"a/b;c", []rune{'/', ';'}},
		{"ä\t", []rune{'ä', '\t'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ValidateProtocol(tt.name)); diff != "" {
				t.Errorf("ValidateProtocol(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestSplitProtocols(t *testing.T) {
	valid, rejected := SplitProtocols("chat,bad/one,,v2")

	if diff := cmp.Diff([]string{"chat", "v2"}, valid); diff != "" {
		t.Errorf("valid mismatch (-want +got):\n%s", diff)
	}
	want := []Rejected{
		{Candidate: "bad/one", Invalid: []rune{'/'}},
		{Candidate: ""},
	}
	if diff := cmp.Diff(want, rejected); diff != "" {
		t.Errorf("rejected mismatch (-want +got):\n%s", diff)
	}

	valid, rejected = SplitProtocols("")
	if valid != nil || rejected != nil {
		t.Errorf("SplitProtocols(\"\") = %v, %v", valid, rejected)
	}
}
