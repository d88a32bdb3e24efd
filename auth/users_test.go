package auth

import (
	"testing"

	"smart-extract/config"
)

func TestExtractBetween(t *testing.T) {
	str := "{sha256}(foo{password}{user}{salt}{globalsalt})"
	got := extractBetween(str, "{sha256}(", ")")
	want := "foo{password}{user}{salt}{globalsalt}"
	if got != want {
		t.Errorf("extractBetween failed: got %q, want %q", got, want)
	}
	if got := extractBetween(str, "{sha1}(", ")"); got != "" {
		t.Errorf("extractBetween should return empty string if start not found, got %q", got)
	}
}

func TestApplyHashMacro_Sha256(t *testing.T) {
	got, err := ApplyHashMacro("{sha256}({password}{salt})", "pass", "alice", "abcd", "")
	if err != nil {
		t.Fatalf("ApplyHashMacro failed: %v", err)
	}
	want := sha256Hash("passabcd")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestApplyHashMacro_Clear(t *testing.T) {
	got, err := ApplyHashMacro("{clear}({password})", "pass", "alice", "", "")
	if err != nil {
		t.Fatalf("ApplyHashMacro failed: %v", err)
	}
	if got != "pass" {
		t.Errorf("Expected clear password, got %q", got)
	}
}

func TestApplyHashMacro_Unsupported(t *testing.T) {
	if _, err := ApplyHashMacro("{bcrypt}({password})", "pass", "alice", "", ""); err == nil {
		t.Error("Expected error for unsupported macro")
	}
}

func TestCheckPassword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.HashMacro = "{sha256}({password}{salt}{globalsalt})"
	cfg.Auth.Salt = "global"
	users := &UsersFile{
		Users: map[string]UserInfo{
			"alice": {Hash: sha256Hash("secretpw" + "s1" + "global"), Salt: "s1", Admin: true},
		},
	}

	isAdmin, ok := CheckPassword(cfg, users, "alice", "secretpw")
	if !ok {
		t.Fatal("Expected valid password")
	}
	if !isAdmin {
		t.Error("Expected alice to be admin")
	}

	if _, ok := CheckPassword(cfg, users, "alice", "wrong"); ok {
		t.Error("Expected wrong password to fail")
	}
	if _, ok := CheckPassword(cfg, users, "bob", "secretpw"); ok {
		t.Error("Expected unknown user to fail")
	}
}
