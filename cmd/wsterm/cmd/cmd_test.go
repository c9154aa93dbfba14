package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/foundation/tmplexpr"
	"github.com/msto63/wsterm/internal/echoserver"
	"github.com/msto63/wsterm/pkg/core/config"
)

// isolate points the config lookup at an empty file in a temp dir
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wsterm.toml")
	content := "[log]\nfile = \"" + filepath.Join(dir, "wsterm.log") + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigPath, path)
	cfgFile = ""
	t.Cleanup(func() { log.SetDefault(log.Discard()) })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestViewParticles(t *testing.T) {
	expr := tmplexpr.MustParse(`a\x00\u{1f600}${v}${byteRange(1, 0x2)}`)

	got := viewParticles(expr)
	want := []particleView{
		{Kind: "text", Source: "a", Value: "a"},
		{Kind: "byte", Source: `\x00`, Value: byte(0)},
		{Kind: "codepoint", Source: `\u{1f600}`, Value: rune(0x1f600)},
		{Kind: "variable", Source: "${v}", Value: "v"},
		{Kind: "function", Source: "${byteRange(1, 2)}", Value: "byteRange", Args: []uint64{1, 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("viewParticles() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteParticles(t *testing.T) {
	views := []particleView{
		{Kind: "text", Source: "hi", Value: "hi"},
		{Kind: "function", Source: "${time()}", Value: "time"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeParticles(&buf, views, "json"); err != nil {
			t.Fatal(err)
		}
		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}
		if len(decoded) != 2 || decoded[1]["value"] != "time" {
			t.Errorf("decoded = %v", decoded)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeParticles(&buf, views, "yaml"); err != nil {
			t.Fatal(err)
		}
		var decoded []map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
		}
		if len(decoded) != 2 || decoded[0]["kind"] != "text" {
			t.Errorf("decoded = %v", decoded)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeParticles(&buf, views, "text"); err != nil {
			t.Fatal(err)
		}
		want := "text       hi\nfunction   ${time()}\n"
		if buf.String() != want {
			t.Errorf("text output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeParticles(&bytes.Buffer{}, views, "xml"); err == nil {
			t.Error("writeParticles(xml) succeeded")
		}
	})
}

func TestStartupLines(t *testing.T) {
	off := false
	tests := []struct {
		name     string
		cfg      config.Config
		args     []string
		expected []string
	}{
		{"splash only", config.Config{}, nil, []string{"/splash"}},
		{"connect", config.Config{}, []string{"ws://x/"}, []string{"/splash", "/connect ws://x/"}},
		{
			"protocols without splash",
			config.Config{
				Terminal:   config.TerminalConfig{Splash: &off},
				Connection: config.ConnectionConfig{Protocols: []string{"a", "b"}},
			},
			[]string{"ws://x/"},
			[]string{"/connect ws://x/ a,b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startupLines(&tt.cfg, tt.args)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("startupLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEscapeCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "escape", "a$b\\c")
	if err != nil {
		t.Fatalf("escape error = %v", err)
	}
	if got := strings.TrimSuffix(out, "\n"); got != `a\$b\\c` {
		t.Errorf("escape output = %q", got)
	}
}

func TestParseCommand_SyntaxError(t *testing.T) {
	isolate(t)

	out, err := execute(t, "parse", "--format", "text", "${unclosed")
	if err == nil {
		t.Fatalf("parse succeeded: %s", out)
	}
}

func TestFunctionsCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "functions")
	if err != nil {
		t.Fatalf("functions error = %v", err)
	}
	for _, name := range []string{"byteRange", "charRange", "randomBytes", "randomChars", "time"} {
		if !strings.Contains(out, name) {
			t.Errorf("functions output misses %s:\n%s", name, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "wsterm v") {
		t.Errorf("version output = %q", out)
	}
}

func TestSendCommand(t *testing.T) {
	isolate(t)

	srv := httptest.NewServer(echoserver.New(echoserver.Options{Logger: log.Discard()}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	out, err := execute(t, "send", "--wait", "300ms", url, `hello\x21`)
	if err != nil {
		t.Fatalf("send error = %v\n%s", err, out)
	}
	for _, want := range []string{"> hello!", "< hello!", "Connection closed"} {
		if !strings.Contains(out, want) {
			t.Errorf("send output misses %q:\n%s", want, out)
		}
	}
}
