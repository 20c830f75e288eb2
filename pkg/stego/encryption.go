package stego

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize         = 16
	NonceSize        = 12
	TagSize          = 16
	KeySize          = 32 // AES-256
	PBKDF2Iterations = 100000

	// EncryptionOverhead is the number of bytes Encrypt adds to a plaintext.
	EncryptionOverhead = SaltSize + NonceSize + TagSize
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

// Encrypt seals plaintext with AES-256-GCM under a key derived from password.
// The result is salt || nonce || ciphertext || tag.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	header := make([]byte, SaltSize+NonceSize, SaltSize+NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	salt, nonce := header[:SaltSize], header[SaltSize:]

	gcm, err := newGCM(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	return gcm.Seal(header, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. A wrong password and a damaged blob both yield
// ErrAuthentication; no unauthenticated plaintext is ever returned.
func Decrypt(blob []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(blob) < EncryptionOverhead {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAuthentication)
	}

	salt := blob[:SaltSize]
	nonce := blob[SaltSize : SaltSize+NonceSize]
	ciphertext := blob[SaltSize+NonceSize:]

	gcm, err := newGCM(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
