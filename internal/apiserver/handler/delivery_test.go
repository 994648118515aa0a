package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
)

func createDelivery(t *testing.T, env *testEnv, cookie string) database.Delivery {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"customerName": "Nimal",
		"items":        []gin.H{{"name": "Cinnamon", "quantity": 2}},
		"total":        25.0,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order database.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = env.do(t, http.MethodPost, "/api/deliveries", gin.H{
		"orderId": order.ID,
		"address": "12 Temple Road, Kandy",
		"driver":  "Sunil",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var d database.Delivery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func TestDeliveryStatusAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	env.register(t, "root", "root@example.com", "secret1", "admin")
	alice := env.login(t, "alice@example.com", "secret1")
	admin := env.login(t, "root@example.com", "secret1")

	d := createDelivery(t, env, alice)
	assert.Equal(t, database.DeliveryScheduled, d.Status)
	path := fmt.Sprintf("/api/deliveries/%d", d.ID)

	// the status route rejects plain users
	w := env.do(t, http.MethodPut, path+"/status", gin.H{"status": "delivered"}, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "E3002", errorCode(t, w))

	// the generic update cannot smuggle a status change past that gate
	w = env.do(t, http.MethodPut, path, gin.H{"status": "delivered", "driver": "Kamal"}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, database.DeliveryScheduled, d.Status)
	assert.Equal(t, "Kamal", d.Driver)

	// an admin transitions it through the status route
	w = env.do(t, http.MethodPut, path+"/status", gin.H{"status": "delivered"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, database.DeliveryDelivered, d.Status)

	// and bogus transitions are rejected even for admins
	w = env.do(t, http.MethodPut, path+"/status", gin.H{"status": "teleported"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
