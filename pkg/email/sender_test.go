package email_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/email"
)

func validMessage() email.Message {
	return email.Message{
		To:       "ann@example.com",
		Subject:  "Registration received",
		BodyHTML: "<p>hi</p>",
		Tag:      "registration",
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.Message)
		ok     bool
	}{
		{name: "valid", mutate: func(*email.Message) {}, ok: true},
		{name: "no tag", mutate: func(m *email.Message) { m.Tag = "" }, ok: true},
		{name: "missing to", mutate: func(m *email.Message) { m.To = "" }},
		{name: "bad to", mutate: func(m *email.Message) { m.To = "ann" }},
		{name: "missing subject", mutate: func(m *email.Message) { m.Subject = "" }},
		{name: "missing body", mutate: func(m *email.Message) { m.BodyHTML = "" }},
		{name: "long tag", mutate: func(m *email.Message) { m.Tag = strings.Repeat("x", 51) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := validMessage()
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidMessage)
		})
	}
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	_, err := email.NewPostmarkSender(email.Config{SenderEmail: "a@b.co", SupportEmail: "c@d.co"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = email.NewPostmarkSender(email.Config{
		PostmarkServerToken:  "s",
		PostmarkAccountToken: "a",
		SenderEmail:          "not-an-email",
		SupportEmail:         "c@d.co",
	})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	s, err := email.NewPostmarkSender(email.Config{
		PostmarkServerToken:  "s",
		PostmarkAccountToken: "a",
		SenderEmail:          "a@b.co",
		SupportEmail:         "c@d.co",
	})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Send(context.Background(), email.Message{}), email.ErrInvalidMessage)
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	s := email.NewDevSender(dir)
	require.NoError(t, s.Send(context.Background(), validMessage()))

	htmlFiles, err := filepath.Glob(filepath.Join(dir, "*_registration.html"))
	require.NoError(t, err)
	require.Len(t, htmlFiles, 1)
	body, err := os.ReadFile(htmlFiles[0])
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))

	jsonFile := strings.TrimSuffix(htmlFiles[0], ".html") + ".json"
	raw, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "ann@example.com", meta["to"])
	assert.Equal(t, "registration", meta["tag"])
	assert.NotContains(t, meta, "BodyHTML")

	assert.ErrorIs(t, s.Send(context.Background(), email.Message{}), email.ErrInvalidMessage)
}

func TestRender(t *testing.T) {
	t.Parallel()

	c := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>ok</b>")
		return err
	})
	out, err := email.Render(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "<b>ok</b>", out)
}
