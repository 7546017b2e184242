package registration

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// Notice messages shown after a submit.
const (
	MsgSubmitted  = "Your form has been submitted successfully."
	MsgRejected   = "You must agree to the terms and conditions."
	MsgSaveFailed = "Your registration could not be saved. Please try again."

	MsgTooManyAttempts = "Too many attempts. Please wait a minute and try again."
)

// NoticeKind selects the style of the notice element.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

const (
	noticeID = "notice"
	formID   = "registration"
	termsID  = "agreed"
)

type fieldView struct {
	field       Field
	label       string
	inputType   string
	placeholder string
}

var fieldViews = []fieldView{
	{FieldFullName, "Full Name", "text", "Enter your full name"},
	{FieldEmail, "Email", "email", "Enter your email"},
	{FieldPassword, "Password", "password", "Enter your password"},
	{FieldPhoneNumber, "Phone Number", "tel", "Enter your phone number"},
	{FieldAge, "Age", "number", "Enter your age from 18 - 90"},
	{FieldCountry, "Country", "select", "Select your country"},
}

// ErrorID is the element id of the message of f.
func ErrorID(f Field) string {
	return string(f) + "-error"
}

// html collects the first write error so components can be written as a
// flat sequence of writes.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" " + name + "=\"")
	h.text(value)
	h.raw("\"")
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

// PageView is the full registration document.
func PageView(snap Snapshot, countries []Country, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Registration</title>`)
		h.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"></script>`)
		h.raw(`</head><body>`)
		h.component(ctx, FormView(snap, countries, basePath))
		h.raw(`</body></html>`)
		return h.err
	})
}

// FormView is the form with its signal store, errors and notice slot.
func FormView(snap Snapshot, countries []Country, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(SignalsOf(snap))
		if err != nil {
			return err
		}

		h := &html{w: w}
		h.raw(`<main`)
		h.attr("id", formID)
		h.attr("data-signals", string(signals))
		h.raw(`><h1>Registration</h1><form novalidate onsubmit="return false">`)

		for _, fv := range fieldViews {
			h.raw(`<div class="field"><label`)
			h.attr("for", string(fv.field))
			h.raw(`>`)
			h.text(fv.label)
			h.raw(`</label>`)
			if fv.inputType == "select" {
				writeSelect(h, fv, countries, snap.Values[fv.field].String(), basePath)
			} else {
				writeInput(h, fv, basePath)
			}
			h.component(ctx, FieldError(fv.field, snap.Errors.Get(fv.field)))
			h.raw(`</div>`)
		}

		h.raw(`<div class="field terms"><label><input type="checkbox"`)
		h.attr("id", termsID)
		h.attr("data-bind", SignalAgreed)
		h.attr("data-on:change", post(basePath, "/agree"))
		h.raw(`> I agree to the terms and conditions</label></div>`)

		h.raw(`<div class="actions"><button type="button"`)
		h.attr("data-attr:disabled", "!$"+SignalCanSubmit)
		h.attr("data-on:click", post(basePath, "/submit"))
		h.raw(`>Register</button><button type="button" class="secondary"`)
		h.attr("data-on:click", post(basePath, "/reset"))
		h.raw(`>Reset</button></div></form>`)

		h.raw(`<div`)
		h.attr("id", noticeID)
		h.raw(`></div></main>`)
		return h.err
	})
}

func writeInput(h *html, fv fieldView, basePath string) {
	h.raw(`<input`)
	h.attr("id", string(fv.field))
	h.attr("name", string(fv.field))
	h.attr("type", fv.inputType)
	h.attr("placeholder", fv.placeholder)
	if fv.field == FieldAge {
		h.attr("min", "18")
		h.attr("max", "90")
	}
	h.attr("data-bind", string(fv.field))
	h.attr("data-on:input__debounce.300ms", post(basePath, "/fields/"+string(fv.field)))
	h.raw(`>`)
}

func writeSelect(h *html, fv fieldView, countries []Country, selected, basePath string) {
	h.raw(`<select`)
	h.attr("id", string(fv.field))
	h.attr("name", string(fv.field))
	h.attr("data-bind", string(fv.field))
	h.attr("data-on:change", post(basePath, "/fields/"+string(fv.field)))
	h.raw(`><option value="">`)
	h.text(fv.placeholder)
	h.raw(`</option>`)
	for _, c := range countries {
		h.raw(`<option`)
		h.attr("value", c.Value)
		if c.Value == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(c.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}

func post(basePath, path string) string {
	return "@post('" + basePath + path + "')"
}

// FieldError is the message element of f. An empty message renders an
// empty element so the slot stays patchable.
func FieldError(f Field, msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<p class="field-error" role="alert"`)
		h.attr("id", ErrorID(f))
		h.raw(`>`)
		h.text(msg)
		h.raw(`</p>`)
		return h.err
	})
}

// Notice is the popup shown after a submit.
func Notice(kind NoticeKind, msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div role="status"`)
		h.attr("id", noticeID)
		h.attr("class", "notice notice-"+string(kind))
		h.raw(`>`)
		h.text(msg)
		h.raw(`</div>`)
		return h.err
	})
}

// ConfirmationEmail is the body of the mail sent after a registration.
func ConfirmationEmail(name, country string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html><body><p>Hello `)
		h.text(name)
		h.raw(`,</p><p>Your registration from `)
		h.text(country)
		h.raw(` has been received.</p><p>You can ignore this email if you did not sign up.</p></body></html>`)
		return h.err
	})
}
