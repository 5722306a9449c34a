//go:build darwin

package internal

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/keybase/go-keychain"
)

const (
	KeychainService = "cloudrecon"
	KeychainAccount = "store-key"
)

// GetSecret retrieves the store secret from one of three sources (in priority order):
// 1. Explicit flag/argument (passed in)
// 2. Environment variable (CLOUDRECON_SECRET)
// 3. System Keychain
func GetSecret(explicitSecret string) (string, error) {
	if explicitSecret != "" {
		return explicitSecret, nil
	}

	if envSecret := os.Getenv(SecretEnvVar); envSecret != "" {
		return envSecret, nil
	}

	secret, err := getKeychainSecret()
	if err == nil && secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("no secret found")
}

// SetupKeychain generates a new random secret and stores it in the keychain.
func SetupKeychain() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(key)

	if err := StoreKeychainSecret(secret); err != nil {
		return "", err
	}
	return secret, nil
}

// StoreKeychainSecret saves secret in the keychain, replacing any existing one.
func StoreKeychainSecret(secret string) error {
	item := keychain.NewItem()
	item.SetSecClass(keychain.SecClassGenericPassword)
	item.SetService(KeychainService)
	item.SetAccount(KeychainAccount)
	item.SetLabel("cloudrecon session store key")
	item.SetAccessGroup(KeychainService)
	item.SetData([]byte(secret))
	item.SetSynchronizable(keychain.SynchronizableNo)
	item.SetAccessible(keychain.AccessibleWhenUnlocked)

	keychain.DeleteItem(item)

	if err := keychain.AddItem(item); err != nil {
		return fmt.Errorf("failed to save to keychain: %w", err)
	}
	return nil
}

func getKeychainSecret() (string, error) {
	query := keychain.NewItem()
	query.SetSecClass(keychain.SecClassGenericPassword)
	query.SetService(KeychainService)
	query.SetAccount(KeychainAccount)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if err != nil {
		return "", err
	} else if len(results) != 1 {
		return "", fmt.Errorf("secret not found in keychain")
	}

	return string(results[0].Data), nil
}
