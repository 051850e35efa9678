package model

// KeyFile represents .hkf file structure
type KeyFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyData represents decrypted key file contents
type KeyData struct {
	PrivateKey []byte `json:"privateKey"` // 32 byte secp256k1 scalar (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
