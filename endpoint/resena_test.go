package endpoint

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/oficiossde/directorio-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResenaValidation(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	path := fmt.Sprintf("/profesionales/%d/resenas", profesional.ID)
	spec := requestSpec{
		method:       http.MethodPost,
		registerPath: "/profesionales/:id/resenas",
		requestPath:  path,
		handler:      CreateResena,
		body:         map[string]interface{}{"autor_nombre": "", "calificacion": 5},
	}
	w, _, err := doRequestWithHandler(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)

	for _, calificacion := range []int{0, 6, -1} {
		spec.body = map[string]interface{}{"autor_nombre": "Maria", "calificacion": calificacion}
		w, _, err = performRequest(r, spec)
		require.NoError(t, err)
		assertStatus(t, w, http.StatusBadRequest)
	}

	var count int64
	db.Model(&model.Resena{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestResenaHiddenUntilApproved(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	path := fmt.Sprintf("/profesionales/%d/resenas", profesional.ID)
	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/profesionales/:id/resenas",
		requestPath:  path,
		handler:      CreateResena,
		body:         map[string]interface{}{"autor_nombre": "Maria Gomez", "calificacion": 5, "comentario": "Excelente"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	// The fresh review is not approved and stays off the public listing
	listSpec := requestSpec{
		method:       http.MethodGet,
		registerPath: "/profesionales/:id/resenas",
		requestPath:  path,
		handler:      ListResenas,
	}
	w, response, err = doRequestWithHandler(r, listSpec)
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total"])

	// Approving it makes it visible
	var resena model.Resena
	require.NoError(t, db.First(&resena).Error)
	assert.False(t, resena.Aprobada)

	aprobada := true
	w, response, err = doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/resenas/:id",
		requestPath:  fmt.Sprintf("/admin/resenas/%d", resena.ID),
		handler:      ModerateResena,
		body:         map[string]interface{}{"aprobada": aprobada},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	w, response, err = performRequest(r, listSpec)
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)
	data = response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestModerateResenaBothWays(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	resena := model.Resena{ProfesionalID: profesional.ID, AutorNombre: "Maria", Calificacion: 4, Aprobada: true}
	require.NoError(t, db.Create(&resena).Error)

	// An approved review can be hidden again
	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/resenas/:id",
		requestPath:  fmt.Sprintf("/admin/resenas/%d", resena.ID),
		handler:      ModerateResena,
		body:         map[string]interface{}{"aprobada": false},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var actualizada model.Resena
	require.NoError(t, db.First(&actualizada, resena.ID).Error)
	assert.False(t, actualizada.Aprobada)
}

func TestCreateResenaComentarioCap(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/profesionales/:id/resenas",
		requestPath:  fmt.Sprintf("/profesionales/%d/resenas", profesional.ID),
		handler:      CreateResena,
		body: map[string]interface{}{
			"autor_nombre": "Maria",
			"calificacion": 3,
			"comentario":   strings.Repeat("á", 600),
		},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var resena model.Resena
	require.NoError(t, db.First(&resena).Error)
	assert.Equal(t, 500, len([]rune(resena.Comentario)))
}

func TestDeleteResena(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	resena := model.Resena{ProfesionalID: profesional.ID, AutorNombre: "Maria", Calificacion: 1}
	require.NoError(t, db.Create(&resena).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodDelete,
		registerPath: "/admin/resenas/:id",
		requestPath:  fmt.Sprintf("/admin/resenas/%d", resena.ID),
		handler:      DeleteResena,
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var count int64
	db.Model(&model.Resena{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
