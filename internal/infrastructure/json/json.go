package json

import (
	"encoding/json"
	"net/http"
)

const maxRequestBody = 1 << 20 // 1 MB

// Read decodes a JSON request body into dst, rejecting oversized bodies and
// unknown fields.
func Read(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(dst)
}

func Write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
