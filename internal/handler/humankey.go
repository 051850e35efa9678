package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"humankey/humankey"
	"humankey/internal/client"
	"humankey/internal/config"
	"humankey/internal/crypto"
	"humankey/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

const maxBodyBytes = 1 << 16

var maskedPrivateKey = strings.Repeat("•", 64)

// HumanKeyHandler serves the demo page and the derivation API
type HumanKeyHandler struct {
	service          *humankey.Service
	defaultSignerURL string
	keyFileDir       string
	page             *template.Template
}

// NewHumanKeyHandler creates a new HumanKeyHandler with config values
func NewHumanKeyHandler(service *humankey.Service) (*HumanKeyHandler, error) {
	if service == nil {
		return nil, errors.New("service is nil")
	}

	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &HumanKeyHandler{
		service:          service,
		defaultSignerURL: config.GetSignerURL(),
		keyFileDir:       config.GetKeyFileDir(),
		page:             page,
	}, nil
}

type pageField struct {
	Name  string
	Value string
}

type pageData struct {
	SignerURL        string
	Fields           []pageField
	Error            string
	Result           *humankey.DerivedKey
	MaskedPrivateKey string
	QRCode           template.URL
}

func newPageData(signerURL string, record model.PulseRecord) *pageData {
	values := record.Fields()
	fields := make([]pageField, len(values))
	for i, v := range values {
		fields[i] = pageField{Name: model.PulseFieldNames[i], Value: v}
	}
	return &pageData{
		SignerURL:        signerURL,
		Fields:           fields,
		MaskedPrivateKey: maskedPrivateKey,
	}
}

// Page handles GET / and POST /
// GET renders the form with the sample pulse data, POST runs one derivation and renders the result.
func (h *HumanKeyHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.renderPage(w, http.StatusOK, newPageData(h.defaultSignerURL, model.DefaultPulseRecord()))
	case http.MethodPost:
		h.submitPage(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

func (h *HumanKeyHandler) submitPage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		data := newPageData(h.defaultSignerURL, model.DefaultPulseRecord())
		data.Error = "invalid form: " + err.Error()
		h.renderPage(w, http.StatusBadRequest, data)
		return
	}

	signerURL := strings.TrimSpace(r.PostForm.Get("signerUrl"))
	if signerURL == "" {
		signerURL = h.defaultSignerURL
	}

	var values [8]string
	for i, name := range model.PulseFieldNames {
		values[i] = strings.TrimSpace(r.PostForm.Get(name))
	}
	record := model.PulseRecordFromFields(values)

	data := newPageData(signerURL, record)

	key, err := h.service.RequestOPRFSecp256k1(r.Context(), signerURL, record)
	if err != nil {
		status, _ := errorStatus(err)
		data.Error = err.Error()
		h.renderPage(w, status, data)
		return
	}
	data.Result = key

	qr, err := humankey.QRCodeDataURL(key.Address)
	if err != nil {
		zap.L().Error("QR code generation failed", zap.Error(err))
	} else {
		data.QRCode = template.URL(qr)
	}

	h.renderPage(w, http.StatusOK, data)
}

func (h *HumanKeyHandler) renderPage(w http.ResponseWriter, status int, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := h.page.Execute(w, data); err != nil {
		zap.L().Error("failed to render page", zap.Error(err))
	}
}

// Derive handles POST /oprf/derive
// @Summary      Derive human key
// @Description  Hashes the pulse record, requests OPRFSecp256k1 from the signer and derives the secp256k1 keypair and Ethereum address
// @Tags         oprf
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveRequest  true  "Signer URL and pulse record"
// @Success      200      {object}  model.DeriveResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /oprf/derive [post]
func (h *HumanKeyHandler) Derive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.DeriveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}

	key, ok := h.derive(w, r, req.SignerURL, req.Record)
	if !ok {
		return
	}

	qr, err := humankey.GenerateQRCode(key.Address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.DeriveResponse{
		PrivateKey: key.PrivateKey,
		PublicKey:  key.PublicKey,
		Address:    key.Address,
		QR:         qr,
	})
}

// Export handles POST /oprf/export
// @Summary      Derive human key and save it encrypted
// @Description  Derives the key like /oprf/derive and writes it to an encrypted .hkf file in the key file directory
// @Tags         oprf
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Signer URL, pulse record and file name"
// @Success      200      {object}  model.ExportResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /oprf/export [post]
func (h *HumanKeyHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}

	filePath, err := h.keyFilePath(req.FileName)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetKeyFilePasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	key, ok := h.derive(w, r, req.SignerURL, req.Record)
	if !ok {
		return
	}

	if err := humankey.ExportKey(filePath, key, passwordBytes); err != nil {
		if humankey.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, model.CodeConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}
	h.service.KeyFileWritten()

	writeJSON(w, http.StatusOK, model.ExportResponse{
		Success: true,
		Message: "Key exported successfully",
		Address: key.Address,
		Path:    filePath,
	})
}

// QRCode handles GET /oprf/qr
// @Summary      Address QR code
// @Description  Renders an Ethereum address as a PNG QR code
// @Tags         oprf
// @Produce      png
// @Param        address  query  string  true  "Ethereum address"
// @Success      200
// @Failure      400  {object}  model.ErrorResponse
// @Router       /oprf/qr [get]
func (h *HumanKeyHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address := r.URL.Query().Get("address")
	if !ethcommon.IsHexAddress(address) {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, "address must be a 20 byte hex address")
		return
	}

	png, err := humankey.QRCodePNG(address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// derive runs the request chain and writes the error response on failure
func (h *HumanKeyHandler) derive(w http.ResponseWriter, r *http.Request, signerURL string, record model.PulseRecord) (*humankey.DerivedKey, bool) {
	signerURL = strings.TrimSpace(signerURL)
	if signerURL == "" {
		signerURL = h.defaultSignerURL
	}

	key, err := h.service.RequestOPRFSecp256k1(r.Context(), signerURL, record)
	if err != nil {
		status, code := errorStatus(err)
		writeError(w, status, code, err.Error())
		return nil, false
	}
	return key, true
}

func (h *HumanKeyHandler) keyFilePath(name string) (string, error) {
	if name == "" {
		return "", errors.New("fileName is required")
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", errors.New("fileName must not contain a path")
	}
	if filepath.Ext(name) != crypto.KeyFileExt {
		return "", errors.New("fileName must have " + crypto.KeyFileExt + " extension")
	}
	return filepath.Join(h.keyFileDir, name), nil
}

// errorStatus maps a derivation error to an HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, humankey.ErrInvalidInput):
		return http.StatusBadRequest, model.CodeInvalidRequest
	case errors.Is(err, client.ErrModuleInit):
		return http.StatusBadGateway, model.CodeInitFailed
	case errors.Is(err, client.ErrSignerRequest):
		return http.StatusBadGateway, model.CodeRequestFailed
	case errors.Is(err, humankey.ErrInvalidScalar), errors.Is(err, humankey.ErrKeyDerivation):
		return http.StatusUnprocessableEntity, model.CodeInvalidScalar
	default:
		return http.StatusInternalServerError, model.CodeInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}
