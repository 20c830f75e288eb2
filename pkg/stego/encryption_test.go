package stego

import (
	"bytes"
	"errors"
	"testing"
)

func TestSymmetricEncryption(t *testing.T) {
	passphrase := "supersecret"
	message := []byte("Hello, World!")

	encrypted, err := Encrypt(message, passphrase)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	if len(encrypted) != len(message)+EncryptionOverhead {
		t.Errorf("Encrypted length = %d; want %d", len(encrypted), len(message)+EncryptionOverhead)
	}

	decrypted, err := Decrypt(encrypted, passphrase)
	if err != nil {
		t.Fatalf("Decryption failed: %v", err)
	}

	if !bytes.Equal(message, decrypted) {
		t.Errorf("Decrypted message does not match original. Got %s, want %s", decrypted, message)
	}
}

func TestEncryptionIsSalted(t *testing.T) {
	a, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	b, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Two encryptions of the same plaintext produced identical output")
	}
}

func TestDecryptFailures(t *testing.T) {
	encrypted, err := Encrypt([]byte("Secret"), "correct")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	tampered := append([]byte(nil), encrypted...)
	tampered[len(tampered)-1] ^= 0x01

	tests := []struct {
		name     string
		blob     []byte
		password string
		want     error
	}{
		{name: "Wrong password", blob: encrypted, password: "wrong", want: ErrAuthentication},
		{name: "Tampered tag", blob: tampered, password: "correct", want: ErrAuthentication},
		{name: "Too short", blob: encrypted[:EncryptionOverhead-1], password: "correct", want: ErrAuthentication},
		{name: "Missing password", blob: encrypted, password: "", want: ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := Decrypt(tt.blob, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decrypt error = %v; want %v", err, tt.want)
			}
			if plaintext != nil {
				t.Errorf("Decrypt returned plaintext %q on failure", plaintext)
			}
		})
	}
}

func TestEncryptRequiresPassword(t *testing.T) {
	if _, err := Encrypt([]byte("x"), ""); !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("Encrypt error = %v; want ErrPasswordRequired", err)
	}
}
