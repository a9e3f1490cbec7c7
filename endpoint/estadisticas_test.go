package endpoint

import (
	"net/http"
	"testing"

	"github.com/oficiossde/directorio-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)

	activo := seedProfesional(t, db, "Activo", categoria.ID, zona.ID)
	inactivo := seedProfesional(t, db, "Inactivo", categoria.ID, zona.ID)
	require.NoError(t, db.Model(&inactivo).UpdateColumn("activo", false).Error)

	seedSolicitud(t, db, categoria, zona)
	catID, zID := categoria.ID, zona.ID
	aprobada := model.SolicitudRegistro{
		Nombre:      "Aprobada",
		Telefono:    "3859998888",
		CategoriaID: &catID,
		ZonaID:      &zID,
		Estado:      model.EstadoAprobada,
	}
	require.NoError(t, db.Create(&aprobada).Error)

	require.NoError(t, db.Create(&model.Resena{
		ProfesionalID: activo.ID,
		AutorNombre:   "Maria Garcia",
		Calificacion:  4,
	}).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/admin/dashboard",
		requestPath:  "/admin/dashboard",
		handler:      Dashboard,
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["profesionales_total"])
	assert.EqualValues(t, 1, data["profesionales_activos"])
	assert.EqualValues(t, 1, data["solicitudes_pendientes"])
	assert.EqualValues(t, 1, data["solicitudes_aprobadas"])
	assert.EqualValues(t, 1, data["resenas_sin_moderar"])

	recientes, ok := data["solicitudes_recientes"].([]interface{})
	require.True(t, ok)
	assert.Len(t, recientes, 2)
}

func TestAnalytics(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)

	popular := seedProfesional(t, db, "Popular", categoria.ID, zona.ID)
	segundo := seedProfesional(t, db, "Segundo", categoria.ID, zona.ID)
	seedProfesional(t, db, "Sin contactos", categoria.ID, zona.ID)
	require.NoError(t, db.Model(&popular).UpdateColumn("contactos_count", 5).Error)
	require.NoError(t, db.Model(&segundo).UpdateColumn("contactos_count", 2).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/admin/analytics",
		requestPath:  "/admin/analytics",
		handler:      Analytics,
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, data["contactos_total"])

	// Professionals with zero clicks are excluded; the rest come back
	// ordered by contact count with their category and zone names joined in
	top, ok := data["top_contactados"].([]interface{})
	require.True(t, ok)
	require.Len(t, top, 2)
	primero := top[0].(map[string]interface{})
	assert.Equal(t, "Popular", primero["nombre"])
	assert.EqualValues(t, 5, primero["contactos_count"])
	assert.Equal(t, categoria.Nombre, primero["categoria_nombre"])
	assert.Equal(t, zona.Nombre, primero["zona_nombre"])
}
