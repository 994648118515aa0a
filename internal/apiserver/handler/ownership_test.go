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

func TestSupplierOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	env.register(t, "bob", "bob@example.com", "secret1", "")
	env.register(t, "root", "root@example.com", "secret1", "admin")
	alice := env.login(t, "alice@example.com", "secret1")
	bob := env.login(t, "bob@example.com", "secret1")
	admin := env.login(t, "root@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/suppliers", gin.H{
		"name":    "Kandy Growers",
		"company": "Kandy Growers Ltd",
		"email":   "sales@kandygrowers.lk",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sup database.Supplier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sup))
	assert.NotZero(t, sup.CreatedBy)
	path := fmt.Sprintf("/api/suppliers/%d", sup.ID)

	// another plain user may not touch it
	w = env.do(t, http.MethodPut, path, gin.H{"phone": "0770000000"}, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "E3001", errorCode(t, w))
	w = env.do(t, http.MethodDelete, path, nil, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the owner may
	w = env.do(t, http.MethodPut, path, gin.H{"phone": "0771111111"}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sup))
	assert.Equal(t, "0771111111", sup.Phone)
	assert.Equal(t, "Kandy Growers", sup.Name)

	// so may an admin
	w = env.do(t, http.MethodPut, path, gin.H{"address": "Kandy"}, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	// and a mutation without any session is rejected outright
	w = env.do(t, http.MethodPut, path, gin.H{"phone": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, path, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderOwnershipAndItems(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	env.register(t, "bob", "bob@example.com", "secret1", "")
	alice := env.login(t, "alice@example.com", "secret1")
	bob := env.login(t, "bob@example.com", "secret1")

	// empty items are rejected
	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"customerName": "Nimal",
		"items":        []gin.H{},
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1005", errorCode(t, w))

	// so are non-positive quantities
	w = env.do(t, http.MethodPost, "/api/orders", gin.H{
		"customerName": "Nimal",
		"items":        []gin.H{{"name": "Cinnamon", "quantity": 0}},
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1005", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/orders", gin.H{
		"customerName": "Nimal",
		"items":        []gin.H{{"name": "Cinnamon", "quantity": 2, "category": "spices"}},
		"total":        25.0,
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order database.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, database.OrderPending, order.Status)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	w = env.do(t, http.MethodPut, path, gin.H{"status": "processing"}, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, path, gin.H{"status": "processing"}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, database.OrderProcessing, order.Status)
	assert.Equal(t, "Nimal", order.CustomerName)

	w = env.do(t, http.MethodDelete, path, nil, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}
