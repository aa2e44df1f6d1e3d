package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"kopipos/internal/handlers"
	"kopipos/internal/middleware"
	"kopipos/internal/models"
	"kopipos/internal/repositories"
	"kopipos/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// Each setupApp call gets its own named in-memory database so tests do not
// see each other's rows.
var testDBCounter int64

// testEnv bundles the app under test with the rows seeded into its store.
type testEnv struct {
	app         *fiber.App
	authService *services.AuthService
	latte       models.Product
	espresso    models.Product
	customer    models.Customer
}

// setupApp wires a Fiber app against in-memory SQLite the same way main
// does, minus the broker, and seeds a small menu plus an admin account.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:kopipos_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.PaymentMethod{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	paymentRepo := repositories.NewGORMPaymentMethodRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	productService := services.NewProductService(productRepo, categoryRepo)
	customerService := services.NewCustomerService(customerRepo)
	paymentService := services.NewPaymentMethodService(paymentRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, paymentRepo, nil)
	reportService := services.NewReportService(reportRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))

	// Report routes first so /orders/history is matched before /orders/:id.
	handlers.NewReportHandler(reportService).RegisterRoutes(protected, middleware.AdminRequired())
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(protected)
	handlers.NewPaymentMethodHandler(paymentService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)

	env := &testEnv{app: app, authService: authService}

	category := models.Category{Name: "Coffee"}
	if err := categoryRepo.Create(&category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	env.latte = models.Product{
		Name:       "Cafe Latte",
		Price:      decimal.RequireFromString("12.50"),
		CategoryID: category.ID,
	}
	env.espresso = models.Product{
		Name:       "Espresso",
		Price:      decimal.RequireFromString("7.25"),
		CategoryID: category.ID,
	}
	for _, p := range []*models.Product{&env.latte, &env.espresso} {
		if err := productRepo.Create(p); err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
	}
	env.customer = models.Customer{CustomerName: "Huong", City: "Hanoi"}
	if err := customerRepo.Create(&env.customer); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	if err := paymentRepo.Create(&models.PaymentMethod{Code: "cash", Name: "Cash"}); err != nil {
		t.Fatalf("failed to seed payment method: %v", err)
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "adminpass123",
		Role:     models.RoleAdmin,
	}
	if err := authService.RegisterUser(admin); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	return env
}

// doJSON performs one request against the app and decodes the response into
// out when it is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	var loginResp map[string]string
	status := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &loginResp)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()

	var registerResp map[string]interface{}
	status := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	return login(t, app, username, password)
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(ioutil.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupApp(t)

	userToRegister := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	var registerResp map[string]interface{}
	status := doJSON(t, env.app, http.MethodPost, "/api/v1/auth/register", "", userToRegister, &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Duplicate registration (username)
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/auth/register", "", userToRegister, nil)
	assert.Equal(t, http.StatusConflict, status)

	// A body without a password is the one rejected up front.
	var badResp map[string]interface{}
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "nopass",
		"email":    "nopass@example.com",
	}, &badResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", badResp["message"])

	token := login(t, env.app, "testuser", "password123")

	// Self-registered accounts are sellers regardless of what was posted.
	claims, err := env.authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])
	assert.Equal(t, models.RoleSeller, claims["role"])
	assert.Contains(t, claims, "user_id")
}

func TestProductEndpoints(t *testing.T) {
	env := setupApp(t)
	token := registerAndLogin(t, env.app, "seller1", "seller1@example.com", "password123")

	// GET /products returns the seeded menu.
	var products []models.Product
	status := doJSON(t, env.app, http.MethodGet, "/api/v1/products", token, nil, &products)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, products, 2)

	// POST /products
	newProduct := map[string]interface{}{
		"name":        "Flat White",
		"description": "Double shot, steamed milk",
		"price":       3.75,
		"category_id": env.latte.CategoryID,
	}
	var createdProduct models.Product
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/products", token, newProduct, &createdProduct)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, createdProduct.ID)
	assert.Equal(t, "Flat White", createdProduct.Name)
	assert.True(t, createdProduct.Price.Equal(decimal.RequireFromString("3.75")))

	// GET /products/:id
	var fetchedProduct models.Product
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/products/"+createdProduct.ID, token, nil, &fetchedProduct)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, createdProduct.ID, fetchedProduct.ID)

	// PUT with an unknown ID is a 404, not an insert.
	status = doJSON(t, env.app, http.MethodPut, "/api/v1/products/does-not-exist", token, map[string]interface{}{
		"name":        "Ghost Product",
		"price":       1.00,
		"category_id": env.latte.CategoryID,
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// PUT /products/:id
	createdProduct.Name = "Flat White Large"
	createdProduct.Price = decimal.RequireFromString("4.25")
	var updatedProduct models.Product
	status = doJSON(t, env.app, http.MethodPut, "/api/v1/products/"+createdProduct.ID, token, createdProduct, &updatedProduct)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Flat White Large", updatedProduct.Name)

	// DELETE deactivates; the product drops off the menu but the row stays
	// resolvable for old order snapshots.
	var deleteResp map[string]string
	status = doJSON(t, env.app, http.MethodDelete, "/api/v1/products/"+createdProduct.ID, token, nil, &deleteResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, deleteResp["message"], "deactivated")

	products = nil
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/products", token, nil, &products)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, createdProduct.ID, p.ID)
	}
}

func TestProductEndpointsWithoutAuth(t *testing.T) {
	env := setupApp(t)

	status := doJSON(t, env.app, http.MethodGet, "/api/v1/products", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, env.app, http.MethodPost, "/api/v1/products", "", map[string]interface{}{
		"name":        "Unauthorized Product",
		"price":       100.0,
		"category_id": env.latte.CategoryID,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestReportEndpointsRequireAdmin(t *testing.T) {
	env := setupApp(t)
	sellerToken := registerAndLogin(t, env.app, "seller2", "seller2@example.com", "password123")

	for _, path := range []string{
		"/api/v1/reports/overview",
		"/api/v1/reports/product-revenue",
		"/api/v1/orders/history",
	} {
		status := doJSON(t, env.app, http.MethodGet, path, sellerToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, status, path)

		status = doJSON(t, env.app, http.MethodGet, path, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestRevenueReportingFlow(t *testing.T) {
	env := setupApp(t)
	adminToken := login(t, env.app, "admin", "adminpass123")

	// One order for a known customer paying cash, one walk-in sale.
	var withCustomer models.Order
	status := doJSON(t, env.app, http.MethodPost, "/api/v1/orders", adminToken, map[string]interface{}{
		"customer_id":         env.customer.ID,
		"payment_method_code": "cash",
		"items": []map[string]interface{}{
			{"product_id": env.latte.ID, "quantity": 1},
		},
	}, &withCustomer)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, withCustomer.TotalAmount.Equal(decimal.RequireFromString("12.50")))

	var walkIn models.Order
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/orders", adminToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": env.espresso.ID, "quantity": 1},
		},
	}, &walkIn)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, walkIn.TotalAmount.Equal(decimal.RequireFromString("7.25")))

	// Overview covers today only and sums exactly in cents: 12.50 + 7.25.
	var overview models.OverviewReport
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/reports/overview", adminToken, nil, &overview)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), overview.TotalOrders)
	assert.Equal(t, 19.75, overview.TotalRevenue)

	// Per-product revenue groups by the name snapshot on the line items.
	var productRevenue []models.ProductRevenueReport
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/reports/product-revenue", adminToken, nil, &productRevenue)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, productRevenue, 2)
	assert.Equal(t, "Cafe Latte", productRevenue[0].ProductName)
	assert.Equal(t, 12.5, productRevenue[0].TotalPrice)
	assert.Equal(t, "Espresso", productRevenue[1].ProductName)
	assert.Equal(t, 7.25, productRevenue[1].TotalPrice)

	// History, newest first; the walk-in order has null names.
	var history []models.OrderHistoryEntry
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/history?date_filter=today", adminToken, nil, &history)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, history, 2)
	assert.Equal(t, walkIn.ID, history[0].ID)
	assert.Equal(t, int64(1), history[0].TotalQuantity)
	assert.Nil(t, history[0].CustomerName)
	assert.Nil(t, history[0].PaymentMethodName)
	assert.Equal(t, withCustomer.ID, history[1].ID)
	if assert.NotNil(t, history[1].CustomerName) {
		assert.Equal(t, "Huong", *history[1].CustomerName)
	}
	if assert.NotNil(t, history[1].PaymentMethodName) {
		assert.Equal(t, "Cash", *history[1].PaymentMethodName)
	}

	// Yesterday's window is empty.
	history = nil
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/history?date_filter=yesterday", adminToken, nil, &history)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, history, 0)

	// An unknown keyword is a client error.
	var errResp map[string]interface{}
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/history?date_filter=bogus", adminToken, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderLifecycle(t *testing.T) {
	env := setupApp(t)
	token := registerAndLogin(t, env.app, "seller3", "seller3@example.com", "password123")

	var order models.Order
	status := doJSON(t, env.app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": env.latte.ID, "quantity": 2},
		},
	}, &order)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")))
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Cafe Latte", order.Items[0].ProductName)

	// An order with no items never reaches the service.
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var fetched models.Order
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, order.ID, fetched.ID)

	status = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", token, map[string]string{
		"status": models.OrderStatusCompleted,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", token, map[string]string{
		"status": "shipped",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var deleteResp map[string]string
	status = doJSON(t, env.app, http.MethodDelete, "/api/v1/orders/"+order.ID, token, nil, &deleteResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, deleteResp["message"], "deleted successfully")

	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrderAccessScopedToOwner(t *testing.T) {
	env := setupApp(t)
	ownerToken := registerAndLogin(t, env.app, "owner", "owner@example.com", "password123")
	otherToken := registerAndLogin(t, env.app, "other", "other@example.com", "password123")

	var order models.Order
	status := doJSON(t, env.app, http.MethodPost, "/api/v1/orders", ownerToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": env.espresso.ID, "quantity": 1},
		},
	}, &order)
	assert.Equal(t, http.StatusCreated, status)

	// Another seller cannot read, re-status or delete the order; each route
	// answers as if it did not exist.
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, otherToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", otherToken, map[string]string{
		"status": models.OrderStatusCancelled,
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, env.app, http.MethodDelete, "/api/v1/orders/"+order.ID, otherToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// The order is untouched for its owner.
	var fetched models.Order
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, ownerToken, nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderStatusPending, fetched.Status)

	// Admins may manage any order.
	adminToken := login(t, env.app, "admin", "adminpass123")
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", adminToken, map[string]string{
		"status": models.OrderStatusCompleted,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, env.app, http.MethodDelete, "/api/v1/orders/"+order.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCustomerAndPaymentMethodEndpoints(t *testing.T) {
	env := setupApp(t)
	token := registerAndLogin(t, env.app, "seller4", "seller4@example.com", "password123")

	var customers []models.Customer
	status := doJSON(t, env.app, http.MethodGet, "/api/v1/customers", token, nil, &customers)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, customers, 1)

	var created models.Customer
	status = doJSON(t, env.app, http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"customer_name": "Linh",
		"city":          "Da Nang",
	}, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, created.ID)

	// Deactivate, then reactivate.
	status = doJSON(t, env.app, http.MethodDelete, "/api/v1/customers/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	var active []models.Customer
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/customers/active", token, nil, &active)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, active, 1)

	status = doJSON(t, env.app, http.MethodPut, "/api/v1/customers/"+created.ID+"/activate", token, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	active = nil
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/customers/active", token, nil, &active)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, active, 2)

	// Payment method codes are unique.
	var methods []models.PaymentMethod
	status = doJSON(t, env.app, http.MethodGet, "/api/v1/payment-methods", token, nil, &methods)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, methods, 1)

	status = doJSON(t, env.app, http.MethodPost, "/api/v1/payment-methods", token, map[string]interface{}{
		"payment_method_code": "qris",
		"name":                "QRIS",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	status = doJSON(t, env.app, http.MethodPost, "/api/v1/payment-methods", token, map[string]interface{}{
		"payment_method_code": "cash",
		"name":                "Cash Again",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}
