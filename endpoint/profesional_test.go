package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/oficiossde/directorio-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfesionalFlags(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/profesionales/:id",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d", profesional.ID),
		handler:      UpdateProfesional,
		body: map[string]interface{}{
			"verificado": true,
			"destacado":  true,
			"disponible": false,
		},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var actualizado model.Profesional
	require.NoError(t, db.First(&actualizado, profesional.ID).Error)
	assert.True(t, actualizado.Verificado)
	assert.True(t, actualizado.Destacado)
	assert.False(t, actualizado.Disponible)
}

func TestUpdateProfesionalInvalidPhone(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/profesionales/:id",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d", profesional.ID),
		handler:      UpdateProfesional,
		body:         map[string]interface{}{"telefono": "12345"},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProfesionalEmptyBody(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/profesionales/:id",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d", profesional.ID),
		handler:      UpdateProfesional,
		body:         map[string]interface{}{},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteProfesionalRemovesDependents(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID, "Instalaciones")
	require.NoError(t, db.Create(&model.GaleriaTrabajo{ProfesionalID: profesional.ID, URL: "https://a/1.jpg"}).Error)
	require.NoError(t, db.Create(&model.Resena{ProfesionalID: profesional.ID, AutorNombre: "Maria", Calificacion: 5}).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodDelete,
		registerPath: "/admin/profesionales/:id",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d", profesional.ID),
		handler:      DeleteProfesional,
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	for _, m := range []interface{}{&model.Servicio{}, &model.GaleriaTrabajo{}, &model.Resena{}} {
		var count int64
		db.Model(m).Where("profesional_id = ?", profesional.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	}
}

func TestListProfesionalesAdminIncludesInactive(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	seedProfesional(t, db, "Activo", categoria.ID, zona.ID)
	inactivo := seedProfesional(t, db, "Inactivo", categoria.ID, zona.ID)
	require.NoError(t, db.Model(&inactivo).Update("activo", false).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/admin/profesionales",
		requestPath:  "/admin/profesionales",
		handler:      ListProfesionalesAdmin,
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	// Keyword search narrows it down
	w, response, err = performRequest(r, requestSpec{
		method:      http.MethodGet,
		requestPath: "/admin/profesionales?keyword=Inactivo",
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)
	data = response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestReorderGaleria(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)

	var trabajos []model.GaleriaTrabajo
	for i := 0; i < 3; i++ {
		trabajo := model.GaleriaTrabajo{ProfesionalID: profesional.ID, URL: fmt.Sprintf("https://a/%d.jpg", i), Orden: i}
		require.NoError(t, db.Create(&trabajo).Error)
		trabajos = append(trabajos, trabajo)
	}

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/profesionales/:id/galeria/orden",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d/galeria/orden", profesional.ID),
		handler:      ReorderGaleria,
		body:         map[string]interface{}{"ids": []uint{trabajos[2].ID, trabajos[0].ID, trabajos[1].ID}},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var ordenados []model.GaleriaTrabajo
	require.NoError(t, db.Where("profesional_id = ?", profesional.ID).Order("orden ASC").Find(&ordenados).Error)
	require.Len(t, ordenados, 3)
	assert.Equal(t, trabajos[2].ID, ordenados[0].ID)
	assert.Equal(t, trabajos[0].ID, ordenados[1].ID)
	assert.Equal(t, trabajos[1].ID, ordenados[2].ID)
}

func TestReorderGaleriaForeignRow(t *testing.T) {
	r, db := setupEndpointTest(t)
	categoria, zona := seedCatalogo(t, db)
	profesional := seedProfesional(t, db, "Juan Perez", categoria.ID, zona.ID)
	otro := seedProfesional(t, db, "Otro", categoria.ID, zona.ID)

	ajeno := model.GaleriaTrabajo{ProfesionalID: otro.ID, URL: "https://a/otro.jpg"}
	require.NoError(t, db.Create(&ajeno).Error)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPatch,
		registerPath: "/admin/profesionales/:id/galeria/orden",
		requestPath:  fmt.Sprintf("/admin/profesionales/%d/galeria/orden", profesional.ID),
		handler:      ReorderGaleria,
		body:         map[string]interface{}{"ids": []uint{ajeno.ID}},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}
