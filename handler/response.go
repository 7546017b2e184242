package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Page renders a full HTML document.
func Page(c templ.Component) Response {
	return pageResponse{component: c}
}

type pageResponse struct {
	component templ.Component
}

func (p pageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return p.component.Render(r.Context(), w)
}

// Patch is one event of a Patches response: either an element patch or a
// signals patch.
type Patch struct {
	component templ.Component
	options   []datastar.PatchElementOption
	signals   map[string]any
}

// Element patches c into the page. Without options Datastar morphs the
// element whose id matches the component's root element.
func Element(c templ.Component, opts ...datastar.PatchElementOption) Patch {
	return Patch{component: c, options: opts}
}

// Target patches c into the element matched by selector using mode.
func Target(c templ.Component, selector string, mode datastar.ElementPatchMode) Patch {
	return Element(c, datastar.WithSelector(selector), datastar.WithMode(mode))
}

// Signals merges values into the client signal store.
func Signals(values map[string]any) Patch {
	return Patch{signals: values}
}

// Patches streams each patch as an SSE event, in order. Non-Datastar
// requests are rejected with 400 since there is no page to patch.
func Patches(patches ...Patch) Response {
	return patchResponse{patches: patches}
}

type patchResponse struct {
	patches []Patch
}

func (p patchResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return BadRequest(ErrNotDataStar)
	}

	sse := datastar.NewSSE(w, r)
	for _, patch := range p.patches {
		if patch.component != nil {
			if err := sse.PatchElementTempl(patch.component, patch.options...); err != nil {
				return err
			}
			continue
		}
		if len(patch.signals) == 0 {
			continue
		}
		data, err := json.Marshal(patch.signals)
		if err != nil {
			return errors.Join(ErrSignalsEncoding, err)
		}
		if err := sse.PatchSignals(data); err != nil {
			return err
		}
	}
	return nil
}

// Redirect answers with a Datastar location change for SSE requests and a
// 303 otherwise.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}

type redirectResponse struct {
	url string
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, http.StatusSeeOther)
	return nil
}

// Error passes err to the error handler of the wrapped handler.
func Error(err error) Response {
	return errorResponse{err: err}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}
