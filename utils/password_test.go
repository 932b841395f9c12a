package utils

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("Hash should not equal the plaintext")
	}

	if !CheckPasswordHash("hunter2", hash) {
		t.Error("Correct password should validate")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("Wrong password should not validate")
	}
	if CheckPasswordHash("hunter2", "") {
		t.Error("Empty hash should never validate")
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("short"); got != "****" {
		t.Errorf("Short values should be fully masked, got %q", got)
	}
	if got := MaskValue("gho_abcdefghijklmnop"); got != "gho_****mnop" {
		t.Errorf("MaskValue = %q", got)
	}
}

func TestMaskExtraData(t *testing.T) {
	data := map[string]interface{}{
		"access_token": "gho_abcdefghijklmnop",
		"login":        "alice",
	}

	masked := MaskExtraData(data)
	if masked["access_token"] == data["access_token"] {
		t.Error("Access token should be masked")
	}
	if masked["login"] != "alice" {
		t.Errorf("Non-sensitive keys should pass through, got %v", masked["login"])
	}
	// The source mapping must stay intact.
	if data["access_token"] != "gho_abcdefghijklmnop" {
		t.Error("MaskExtraData must not mutate its input")
	}

	if MaskExtraData(nil) != nil {
		t.Error("Nil extra data should stay nil")
	}
}
