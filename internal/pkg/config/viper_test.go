package config

import (
	"testing"
	"time"
)

func TestViperTypedGetters(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(`
app:
  name: blog
  enabled: true
  workers: 4
  ratio: 0.25
  big: 9000000000
  wait_seconds: 30
  otp_minutes: 10
  session_hours: 24
  tags: alpha,beta
  secret: aGVsbG8=
`))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetString("app.name"); got != "blog" {
		t.Errorf("GetString = %q", got)
	}
	if !cfg.GetBool("app.enabled") {
		t.Error("GetBool = false, want true")
	}
	if got := cfg.GetInt("app.workers"); got != 4 {
		t.Errorf("GetInt = %d", got)
	}
	if got := cfg.GetFloat64("app.ratio"); got != 0.25 {
		t.Errorf("GetFloat64 = %v", got)
	}
	if got := cfg.GetInt64("app.big"); got != 9000000000 {
		t.Errorf("GetInt64 = %d", got)
	}
	if got := cfg.GetSecond("app.wait_seconds"); got != 30*time.Second {
		t.Errorf("GetSecond = %v", got)
	}
	if got := cfg.GetMinute("app.otp_minutes"); got != 10*time.Minute {
		t.Errorf("GetMinute = %v", got)
	}
	if got := cfg.GetHour("app.session_hours"); got != 24*time.Hour {
		t.Errorf("GetHour = %v", got)
	}
	if got := cfg.GetArray("app.tags"); len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("GetArray = %v", got)
	}
	if got := cfg.GetBinary("app.secret"); string(got) != "hello" {
		t.Errorf("GetBinary = %q", got)
	}
}

func TestViperMissingKeysReturnZeroValues(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(`app: {}`))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	defer cfg.Close()

	if cfg.GetString("nope") != "" || cfg.GetInt("nope") != 0 || cfg.GetBool("nope") {
		t.Error("missing keys should produce zero values")
	}
}
