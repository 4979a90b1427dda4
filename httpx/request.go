package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// WantsJSON reports whether the client prefers a JSON answer: it asked for
// application/json without text/html, or it sent a JSON body.
func WantsJSON(r *http.Request) bool {
	if IsJSONBody(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func IsJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// DecodeJSON reads a JSON body of at most maxBytes into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
