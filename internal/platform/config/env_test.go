package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

type envTestConfig struct {
	Addr    string        `env:"RETINA_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"RETINA_TEST_TIMEOUT" envDefault:"15s"`
	Size    int           `env:"RETINA_TEST_SIZE" envDefault:"10"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, 15*time.Second)
	}
	if cfg.Size != 10 {
		t.Fatalf("Size = %d, want 10", cfg.Size)
	}
}

func TestParseEnvWithOptionsUsesEnvironmentMap(t *testing.T) {
	var cfg envTestConfig
	err := ParseEnvWithOptions(&cfg, env.Options{Environment: map[string]string{
		"RETINA_TEST_ADDR": "127.0.0.1:9000",
		"RETINA_TEST_SIZE": "25",
	}})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "127.0.0.1:9000")
	}
	if cfg.Size != 25 {
		t.Fatalf("Size = %d, want 25", cfg.Size)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("RETINA_TEST_SIZE", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestExitfWritesMessageAndExitCode(t *testing.T) {
	var out bytes.Buffer
	code := -1
	prevOut, prevExit := exitOutput, exitFunc
	exitOutput = &out
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitOutput = prevOut
		exitFunc = prevExit
	})

	Exitf("fatal: %s", "something broke")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := out.String(); got != "fatal: something broke\n" {
		t.Fatalf("output = %q, want %q", got, "fatal: something broke\n")
	}
}
