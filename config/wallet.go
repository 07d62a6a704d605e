package config

// Wallet is the "wallet" section of config.yaml: which node to talk
// to, how confirmed state must be, and where the key lives. The key
// itself is a Secret reference, never an inline value.
type Wallet struct {
	RpcURL     string `yaml:"rpc_url,omitempty"`
	Commitment string `yaml:"commitment,omitempty"`
	Keypair    Secret `yaml:"keypair,omitempty"`
}

func DefaultWallet() *Wallet {
	return &Wallet{
		RpcURL:     "https://api.devnet.solana.com",
		Commitment: "confirmed",
		Keypair:    Secret("file:~/.config/solana/id.json"),
	}
}

// LoadWallet reads the wallet section, falling back to devnet defaults
// when no config file exists.
func LoadWallet() (*Wallet, error) {
	wallet := &Wallet{}
	if err := RequireConfig("wallet", wallet, DefaultWallet()); err != nil {
		return nil, err
	}
	return wallet, nil
}

// StarterConfig is what `solstake config init` writes.
const StarterConfig = `wallet:
  # JSON-RPC endpoint of the node to use
  rpc_url: "https://api.devnet.solana.com"
  # processed | confirmed | finalized
  commitment: "confirmed"
  # Secret reference to the wallet keypair:
  #   file:~/.config/solana/id.json
  #   env:SOLSTAKE_PRIVATE_KEY
  #   vault:https://vault.example.com,secret/solstake/key
  keypair: "file:~/.config/solana/id.json"
`
