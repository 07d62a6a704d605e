package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	vault "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestGetSecretEnv() {
	require := s.Require()
	os.Setenv("SOLSTAKE_TEST_SECRET", "  uno  ")
	defer os.Unsetenv("SOLSTAKE_TEST_SECRET")
	secret, err := GetSecret("env:SOLSTAKE_TEST_SECRET")
	require.NoError(err)
	require.Equal("uno", secret)
}

func (s *ConfigTestSuite) TestGetSecretFile() {
	require := s.Require()
	path := filepath.Join(s.T().TempDir(), "secret.txt")
	require.NoError(os.WriteFile(path, []byte("due\n"), 0o600))
	secret, err := GetSecret("file:" + path)
	require.NoError(err)
	require.Equal("due", secret)
}

func (s *ConfigTestSuite) TestGetSecretFileMissing() {
	require := s.Require()
	_, err := GetSecret("file:/nonexistent/solstake-secret")
	require.Error(err)
}

func (s *ConfigTestSuite) TestGetSecretRaw() {
	require := s.Require()
	secret, err := GetSecret(string(NewRawSecret("tre")))
	require.NoError(err)
	require.Equal("tre", secret)
}

func (s *ConfigTestSuite) TestGetSecretInvalid() {
	require := s.Require()
	_, err := GetSecret("plain-value-without-scheme")
	require.ErrorContains(err, "invalid secret source")

	_, err = GetSecret("gopher:whatever")
	require.ErrorContains(err, "invalid secret source")
}

type mockVaultLoader struct {
	data map[string]interface{}
	path string
}

func (m *mockVaultLoader) LoadSecretData(path string) (*vault.Secret, error) {
	if path != m.path {
		return nil, errors.New("unexpected path: " + path)
	}
	return &vault.Secret{Data: m.data}, nil
}

func (s *ConfigTestSuite) TestGetSecretVault() {
	require := s.Require()
	original := NewVaultClient
	defer func() { NewVaultClient = original }()

	var payload map[string]interface{}
	require.NoError(json.Unmarshal([]byte(`{"data": {"key1": "quattro"}}`), &payload))
	NewVaultClient = func(cfg *vault.Config) (VaultLoader, error) {
		require.Equal("https://vault.example.com", cfg.Address)
		return &mockVaultLoader{data: payload, path: "secret/solstake"}, nil
	}

	secret, err := GetSecret("vault:https://vault.example.com,secret/solstake/key1")
	require.NoError(err)
	require.Equal("quattro", secret)
}

func (s *ConfigTestSuite) TestHasTypePrefix() {
	require := s.Require()
	require.True(HasTypePrefix("env:FOO"))
	require.True(HasTypePrefix("file:~/id.json"))
	require.True(HasTypePrefix("vault:https://x,secret/y/z"))
	require.True(HasTypePrefix("raw:abc"))
	require.False(HasTypePrefix("abc"))
}

func (s *ConfigTestSuite) TestLoadWalletDefaults() {
	require := s.Require()
	// point the config env at an empty directory so no file is found
	os.Setenv("SOLSTAKE_CONFIG", filepath.Join(s.T().TempDir(), "config.yaml"))
	defer os.Unsetenv("SOLSTAKE_CONFIG")

	wallet, err := LoadWallet()
	require.NoError(err)
	require.Equal("https://api.devnet.solana.com", wallet.RpcURL)
	require.Equal("confirmed", wallet.Commitment)
}

func (s *ConfigTestSuite) TestLoadWalletFromFile() {
	require := s.Require()
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	content := "wallet:\n  rpc_url: \"http://localhost:8899\"\n  commitment: \"finalized\"\n  keypair: \"env:SOLSTAKE_PRIVATE_KEY\"\n"
	require.NoError(os.WriteFile(path, []byte(content), 0o600))
	os.Setenv("SOLSTAKE_CONFIG", path)
	defer os.Unsetenv("SOLSTAKE_CONFIG")

	wallet, err := LoadWallet()
	require.NoError(err)
	require.Equal("http://localhost:8899", wallet.RpcURL)
	require.Equal("finalized", wallet.Commitment)
	require.Equal(Secret("env:SOLSTAKE_PRIVATE_KEY"), wallet.Keypair)
}
