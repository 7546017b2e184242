package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const datastarQueryParam = "datastar"

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
)

// IsDataStar reports whether r was issued by the Datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get("Datastar-Request") == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(datastarQueryParam)
}

// BindSignals decodes the Datastar signal store of r into v. Malformed
// signals are reported as a 400.
func BindSignals(r *http.Request, v any) error {
	if err := datastar.ReadSignals(r, v); err != nil {
		return BadRequest(errors.Join(ErrInvalidSignals, err))
	}
	return nil
}
