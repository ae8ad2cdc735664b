package user

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("correct horse battery staple"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if len(u.PasswordHash) == 0 {
		t.Fatal("expected non-empty hash")
	}
	if string(u.PasswordHash) == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	if !u.CheckPassword("correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	u := &User{}
	if u.CheckPassword("anything") {
		t.Error("empty hash must never match")
	}
}
