package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the RSA key size used for generated pairs.
const DefaultBits = 4096

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit
// size. The private key carries no passphrase; access control is the file
// mode of the directory it is written to.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	err = privateKey.Validate()
	if err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privDER := x509.MarshalPKCS1PrivateKey(privateKey)
	privBlock := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privDER,
	}
	privateKeyPEM := pem.EncodeToMemory(&privBlock)

	publicRsaKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	pubKeyBytes := ssh.MarshalAuthorizedKey(publicRsaKey)

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubKeyBytes,
	}, nil
}

// LoadOrGenerate returns the key pair stored in dir, generating and
// persisting a fresh one if the private key file is absent. The returned
// bool reports whether a new pair was generated.
//
// The directory is created with mode 0700, the private key with 0600.
// An existing private key is never rotated; the caller is expected to
// have registered its public half remotely on the run that created it.
func LoadOrGenerate(dir, name string) (*KeyPair, bool, error) {
	privPath := filepath.Join(dir, name)
	pubPath := privPath + ".pub"

	if _, err := os.Stat(privPath); err == nil {
		priv, err := os.ReadFile(privPath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read private key: %w", err)
		}
		pub, err := os.ReadFile(pubPath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read public key: %w", err)
		}
		return &KeyPair{PrivateKey: priv, PublicKey: pub}, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("failed to stat private key: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, false, fmt.Errorf("failed to create key directory: %w", err)
	}

	pair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		return nil, false, err
	}

	if err := os.WriteFile(privPath, pair.PrivateKey, 0o600); err != nil {
		return nil, false, fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(pubPath, pair.PublicKey, 0o644); err != nil {
		return nil, false, fmt.Errorf("failed to write public key: %w", err)
	}

	return pair, true, nil
}

// AuthorizedLine formats the public key as the "user:key" metadata entry
// the cloud expects for per-user SSH access.
func (k *KeyPair) AuthorizedLine(user string) string {
	return fmt.Sprintf("%s:%s", user, strings.TrimSpace(string(k.PublicKey)))
}
