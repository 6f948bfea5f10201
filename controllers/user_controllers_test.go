package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/controllers"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupUserRouter(db)

	payload := map[string]string{
		"email":      "new@example.com",
		"password":   "secret123",
		"first_name": "New",
		"last_name":  "Shopper",
	}
	w := doJSON(t, r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerResp))
	assert.NotEmpty(t, registerResp.Data.Token)

	// Same email again -> conflict
	w = doJSON(t, r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp.Data.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	r := setupUserRouter(db)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"email":      "new@example.com",
		"password":   "secret123",
		"first_name": "New",
		"last_name":  "Shopper",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email":    "new@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	db := setupTestDB(t)
	r := setupUserRouter(db)

	// Missing email
	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"password":   "secret123",
		"first_name": "New",
		"last_name":  "Shopper",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password below minimum length
	w = doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"email":      "short@example.com",
		"password":   "abc",
		"first_name": "New",
		"last_name":  "Shopper",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
