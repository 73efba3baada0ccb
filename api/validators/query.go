package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
)

// RequireQuery returns the trimmed query parameter, erroring when it
// is absent or blank.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
