package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/oficiossde/directorio-api/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReescritor struct {
	resultado string
	err       error
}

func (f *fakeReescritor) Reescribir(ctx context.Context, descripcion string) (string, error) {
	return f.resultado, f.err
}

func withReescritor(t *testing.T, r util.Reescritor) {
	t.Helper()
	previo := util.GetReescritor()
	util.SetReescritor(r)
	t.Cleanup(func() { util.SetReescritor(previo) })
}

func TestReescribirDescripcionDisabled(t *testing.T) {
	r, _ := setupEndpointTest(t)
	withReescritor(t, nil)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/descripcion/reescribir",
		requestPath:  "/descripcion/reescribir",
		handler:      ReescribirDescripcion,
		body:         map[string]string{"descripcion": "arreglo canillas"},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, response["msg"], "not available")
}

func TestReescribirDescripcionSuccess(t *testing.T) {
	r, _ := setupEndpointTest(t)
	withReescritor(t, &fakeReescritor{resultado: "Realizo reparaciones de griferia e instalaciones sanitarias."})

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/descripcion/reescribir",
		requestPath:  "/descripcion/reescribir",
		handler:      ReescribirDescripcion,
		body:         map[string]string{"descripcion": "arreglo canillas"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Realizo reparaciones de griferia e instalaciones sanitarias.", data["descripcion"])
}

func TestReescribirDescripcionErrorKinds(t *testing.T) {
	r, _ := setupEndpointTest(t)

	spec := requestSpec{
		method:       http.MethodPost,
		registerPath: "/descripcion/reescribir",
		requestPath:  "/descripcion/reescribir",
		handler:      ReescribirDescripcion,
		body:         map[string]string{"descripcion": "arreglo canillas"},
	}

	// Rate limit failures get their own message
	withReescritor(t, &fakeReescritor{err: fmt.Errorf("googleapi: Error 429: RESOURCE_EXHAUSTED")})
	w, response, err := doRequestWithHandler(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, response["msg"], "busy")

	// Auth failures too
	withReescritor(t, &fakeReescritor{err: fmt.Errorf("googleapi: Error 403: PERMISSION_DENIED")})
	w, response, err = performRequest(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, response["msg"], "rejected")

	// Anything else is generic
	withReescritor(t, &fakeReescritor{err: fmt.Errorf("connection reset")})
	w, response, err = performRequest(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, response["msg"], "Failed to rewrite")
}

func TestReescribirDescripcionEmptyBody(t *testing.T) {
	r, _ := setupEndpointTest(t)
	withReescritor(t, &fakeReescritor{resultado: "algo"})

	w, _, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/descripcion/reescribir",
		requestPath:  "/descripcion/reescribir",
		handler:      ReescribirDescripcion,
		body:         map[string]string{"descripcion": "   "},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}
