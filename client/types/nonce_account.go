package types

// NonceAccount is the jsonParsed rendering of a system nonce account.
type NonceAccount struct {
	Parsed struct {
		Info struct {
			Authority     string `json:"authority"`
			Blockhash     string `json:"blockhash"`
			FeeCalculator struct {
				LamportsPerSignature string `json:"lamportsPerSignature"`
			} `json:"feeCalculator"`
		} `json:"info"`
		Type string `json:"type"`
	} `json:"parsed"`
	Program string `json:"program"`
	Space   int    `json:"space"`
}
