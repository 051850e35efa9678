package model

// DeriveRequest represents request for POST /oprf/derive
type DeriveRequest struct {
	SignerURL string      `json:"signerUrl"`
	Record    PulseRecord `json:"record"`
}

// DeriveResponse represents response for POST /oprf/derive
type DeriveResponse struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
	Address    string `json:"address"`
	QR         string `json:"qr"` // base64 PNG of the address
}

// ExportRequest represents request for POST /oprf/export
type ExportRequest struct {
	SignerURL string      `json:"signerUrl"`
	Record    PulseRecord `json:"record"`
	FileName  string      `json:"fileName"`
}

// ExportResponse represents response for POST /oprf/export
type ExportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
	Path    string `json:"path,omitempty"`
}
