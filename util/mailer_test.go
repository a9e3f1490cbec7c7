package util

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailJSMailerRequiresAllSettings(t *testing.T) {
	assert.Nil(t, NewEmailJSMailer("", "tpl", "key", "admin@x.com"))
	assert.Nil(t, NewEmailJSMailer("svc", "", "key", "admin@x.com"))
	assert.Nil(t, NewEmailJSMailer("svc", "tpl", "", "admin@x.com"))
	assert.Nil(t, NewEmailJSMailer("svc", "tpl", "key", ""))
	assert.NotNil(t, NewEmailJSMailer("svc", "tpl", "key", "admin@x.com"))
}

func TestEmailJSMailerSend(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewEmailJSMailer("svc", "tpl", "key", "admin@x.com")
	mailer.Endpoint = server.URL

	err := mailer.Send(context.Background(), map[string]string{"nombre": "Juan"})
	require.NoError(t, err)

	assert.Equal(t, "svc", payload["service_id"])
	assert.Equal(t, "tpl", payload["template_id"])
	assert.Equal(t, "key", payload["user_id"])

	params := payload["template_params"].(map[string]interface{})
	assert.Equal(t, "Juan", params["nombre"])
	// The admin address rides along in the template params
	assert.Equal(t, "admin@x.com", params["admin_email"])
}

func TestEmailJSMailerSendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	mailer := NewEmailJSMailer("svc", "tpl", "key", "admin@x.com")
	mailer.Endpoint = server.URL

	err := mailer.Send(context.Background(), nil)
	assert.Error(t, err)
}
