package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into v. It only covers malformed
// JSON; handlers validate the decoded struct themselves.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
