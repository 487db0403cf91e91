package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servquick/household-services/internal/models"
)

func TestServiceAdd(t *testing.T) {
	r, _ := newTestServer(t)
	admin := adminClient(t, r)

	w := admin.post("/admin/service/add", gin.H{
		"name":          "Gardening",
		"price":         350.0,
		"time_required": "2 hours",
		"description":   "Lawn and hedge care",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Gardening", body["name"])
	assert.EqualValues(t, 350, body["price"])

	// The catalog now lists five services.
	w = admin.get("/admin/service/add")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, decode(t, w)["total"])
}

func TestServiceAddDuplicate(t *testing.T) {
	r, _ := newTestServer(t)
	admin := adminClient(t, r)

	w := admin.post("/admin/service/add", gin.H{
		"name":  "Plumbing",
		"price": 100.0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "service_exists", errorCode(t, w))
}

func TestServiceAddNegativePrice(t *testing.T) {
	r, _ := newTestServer(t)
	admin := adminClient(t, r)

	w := admin.post("/admin/service/add", gin.H{
		"name":  "Gardening",
		"price": -10.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_price", errorCode(t, w))
}

func TestServiceEdit(t *testing.T) {
	r, db := newTestServer(t)
	admin := adminClient(t, r)

	var svc models.Service
	require.NoError(t, db.Where("name = ?", "Salon").First(&svc).Error)

	w := admin.post(fmt.Sprintf("/admin/service/edit/%d", svc.ID), gin.H{
		"price":       450.0,
		"description": "Premium home salon",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.EqualValues(t, 450, body["price"])
	assert.Equal(t, "Premium home salon", body["description"])
	// Untouched fields stay.
	assert.Equal(t, "Salon", body["name"])
}

func TestServiceDelete(t *testing.T) {
	r, db := newTestServer(t)
	admin := adminClient(t, r)

	var svc models.Service
	require.NoError(t, db.Where("name = ?", "Salon").First(&svc).Error)

	w := admin.post(fmt.Sprintf("/admin/service/edit/%d", svc.ID), gin.H{"action": "delete"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Service{}).Where("id = ?", svc.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceDeleteInUse(t *testing.T) {
	r, db := newTestServer(t)
	signupProfessional(t, r, "bob", "Plumbing")

	admin := adminClient(t, r)

	var svc models.Service
	require.NoError(t, db.Where("name = ?", "Plumbing").First(&svc).Error)

	// Bob registered for Plumbing, so the entry cannot go.
	w := admin.post(fmt.Sprintf("/admin/service/edit/%d", svc.ID), gin.H{"action": "delete"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "service_in_use", errorCode(t, w))

	var count int64
	require.NoError(t, db.Model(&models.Service{}).Where("id = ?", svc.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestServiceGetUnknown(t *testing.T) {
	r, _ := newTestServer(t)
	admin := adminClient(t, r)

	w := admin.get("/admin/service/edit/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", errorCode(t, w))
}
