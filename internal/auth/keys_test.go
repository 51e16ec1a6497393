package auth

import (
	"strings"
	"testing"
)

func TestGenerateAndVerify(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.HasPrefix(key.Plaintext, "ar_") {
		t.Errorf("unexpected key format: %s", key.Plaintext)
	}

	keyID, secret, err := Parse(key.Plaintext)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if keyID != key.KeyID {
		t.Errorf("parsed key id %s, want %s", keyID, key.KeyID)
	}

	if !Verify(secret, key.Hash, key.Salt) {
		t.Error("freshly generated key failed verification")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if Verify("not-the-secret", key.Hash, key.Salt) {
		t.Error("wrong secret verified")
	}
}

func TestParse_Malformed(t *testing.T) {
	bad := []string{
		"",
		"ar",
		"ar_",
		"ar_onlyid",
		"ar_id_",
		"xx_id_secret",
		"plainword",
	}

	for _, b := range bad {
		if _, _, err := Parse(b); err == nil {
			t.Errorf("Parse(%q) should fail", b)
		}
	}
}

func TestGenerate_KeysAreUnique(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatal(err)
	}

	if a.Plaintext == b.Plaintext {
		t.Error("two generated keys are identical")
	}
	if a.KeyID == b.KeyID {
		t.Error("two generated key ids are identical")
	}
}
