package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/database"
	"github.com/veggiecommerce/veggie-app/models"
	"github.com/veggiecommerce/veggie-app/router"
	"github.com/veggiecommerce/veggie-app/services"
	"github.com/veggiecommerce/veggie-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration drives the main storefront flow:
// 1. Register -> token
// 2. Browse the seeded catalog
// 3. Place an order, verify total and stock decrement
// 4. List own orders, fetch the detail
// 5. Cancel, verify stock restored
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	token := registerTest(t, r)

	spinach := browseCatalogTest(t, r)
	orderID := createOrderTest(t, r, token, spinach)

	listOrdersTest(t, r, token, orderID)
	cancelOrderTest(t, r, token, orderID)

	var veg models.Vegetable
	assert.NoError(t, db.First(&veg, spinach.ID).Error)
	assert.Equal(t, 50, veg.StockQuantity)
	assert.True(t, veg.InStock)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Vegetable{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerTest(t *testing.T, r *gin.Engine) string {
	w := request(t, r, http.MethodPost, "/register", "", map[string]string{
		"email":      "shopper@example.com",
		"password":   "secret123",
		"first_name": "Test",
		"last_name":  "Shopper",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func browseCatalogTest(t *testing.T, r *gin.Engine) services.VegetableDetail {
	w := request(t, r, http.MethodGet, "/vegetables/search?query=Spinach", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []services.VegetableDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Fresh Spinach", resp.Data[0].Name)
	assert.Equal(t, 50, resp.Data[0].StockQuantity)
	return resp.Data[0]
}

func createOrderTest(t *testing.T, r *gin.Engine, token string, veg services.VegetableDetail) uint {
	// Unauthenticated requests are rejected
	w := request(t, r, http.MethodPost, "/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, http.MethodPost, "/orders", token, map[string]interface{}{
		"shipping_address": "12 Market Street, Springfield",
		"payment_method":   "cash_on_delivery",
		"notes":            "leave at the door",
		"items": []map[string]interface{}{
			{"vegetable_id": veg.ID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data services.OrderDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 91.98, resp.Data.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, resp.Data.Status)
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 45.99, resp.Data.Items[0].Price)

	// Stock visible through the catalog reflects the decrement
	w = request(t, r, http.MethodGet, "/vegetables/"+strconv.Itoa(int(veg.ID)), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var vegResp struct {
		Data services.VegetableDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &vegResp))
	assert.Equal(t, 48, vegResp.Data.StockQuantity)

	return resp.Data.ID
}

func listOrdersTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	w := request(t, r, http.MethodGet, "/orders", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []services.OrderDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, orderID, resp.Data[0].ID)

	w = request(t, r, http.MethodGet, "/orders/"+strconv.Itoa(int(orderID)), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func cancelOrderTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	w := request(t, r, http.MethodPost, "/orders/"+strconv.Itoa(int(orderID))+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data services.OrderDetail `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusCancelled, resp.Data.Status)
}
