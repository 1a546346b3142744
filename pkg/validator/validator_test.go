package validator

import "testing"

func TestValidateSignup(t *testing.T) {
	errs := ValidateSignup("Alice Doe", "alice", "alice@example.com", "password123")
	if errs.HasErrors() {
		t.Errorf("valid input rejected: %v", errs)
	}

	errs = ValidateSignup("", "", "", "")
	for _, field := range []string{"fullName", "username", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for empty %s", field)
		}
	}

	if errs := ValidateSignup("Alice Doe", "alice", "not-an-email", "password123"); errs["email"] == "" {
		t.Error("bad email accepted")
	}
	if errs := ValidateSignup("Alice Doe", "al ice", "alice@example.com", "password123"); errs["username"] == "" {
		t.Error("username with space accepted")
	}
	if errs := ValidateSignup("Alice Doe", "alice", "alice@example.com", "short"); errs["password"] == "" {
		t.Error("5-char password accepted")
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("alice", "password123"); errs.HasErrors() {
		t.Errorf("valid input rejected: %v", errs)
	}

	errs := ValidateLogin("", "")
	if errs["username"] == "" || errs["password"] == "" {
		t.Errorf("empty credentials accepted: %v", errs)
	}
}
