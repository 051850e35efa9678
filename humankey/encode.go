package humankey

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"humankey/internal/model"
)

// EncodePulseRecord serialises record as compact JSON (fields e_0..e_7 in order,
// no HTML escaping) and returns the base64 SHA-256 digest of it.
// Identical records always encode to the same value.
func EncodePulseRecord(record model.PulseRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("failed to marshal pulse record: %w", err)
	}

	// Encoder terminates every value with a newline
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return Base64Encode(unescapeLineSeparators(out)), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 raw, as JSON.stringify does.
// encoding/json escapes them even with SetEscapeHTML(false). A preceding odd run
// of backslashes means the sequence is literal text, not an escape.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+5 < len(b) && b[i+1] == 'u' && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') && !escapedAt(b, i) {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i])
	}
	return out
}

// escapedAt reports whether the byte at i is preceded by an odd number of backslashes
func escapedAt(b []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// Base64Encode hashes data with SHA-256 and encodes the digest with standard base64
func Base64Encode(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}
