package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over in-memory SQLite with the full route
// layout: public storefront, authenticated, seller portal and admin
// console groups.
func setupApp() (*fiber.App, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// TranslateError turns driver unique-constraint failures into
	// gorm.ErrDuplicatedKey, which the repositories map to ErrDuplicate.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Category{},
		&models.Thread{},
		&models.Post{},
		&models.Notification{},
		&models.Payment{},
		&models.Refund{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	forumRepo := repositories.NewGORMForumRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, nil) // nil cache
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, productRepo, nil)
	forumService := services.NewForumService(forumRepo, nil)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	leaderboardService := services.NewLeaderboardService(orderRepo, nil)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, services.LocalGateway{})

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	forumHandler := handlers.NewForumHandler(forumService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(userService, orderService, productService, reviewService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterStorefrontRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)
	forumHandler.RegisterPublicRoutes(apiV1)
	leaderboardHandler.RegisterRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	orderHandler.RegisterRoutes(authed)
	reviewHandler.RegisterRoutes(authed)
	forumHandler.RegisterRoutes(authed)
	notificationHandler.RegisterRoutes(authed)
	paymentHandler.RegisterRoutes(authed)

	seller := authed.Group("/seller", middleware.RoleRequired(models.RoleSeller, models.RoleAdmin))
	productHandler.RegisterSellerRoutes(seller)
	orderHandler.RegisterSellerRoutes(seller)

	admin := authed.Group("/admin", middleware.RoleRequired(models.RoleAdmin))
	adminHandler.RegisterRoutes(admin)
	forumHandler.RegisterAdminRoutes(admin)

	seedAdminForTest(userRepo)

	return app, nil
}

// seedAdminForTest creates the admin account registration cannot mint.
// Creation fails quietly when a previous setup already seeded it.
func seedAdminForTest(repo repositories.UserRepository) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.DefaultCost)
	admin := &models.User{
		Username:      "rootadmin",
		Email:         "root@example.com",
		Password:      string(hash),
		Role:          models.RoleAdmin,
		NotifyOrders:  true,
		NotifyReviews: true,
		NotifyForum:   true,
	}
	if err := repo.Create(admin); err != nil {
		log.Printf("admin seed skipped: %v", err)
	}
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return login(t, app, username, "password123")
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	body := map[string]string{
		"username": "firstbuyer",
		"email":    "firstbuyer@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResp map[string]interface{}
	decodeBody(t, resp, &registerResp)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Duplicate username
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Short passwords are rejected by validation
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "shortpass",
		"email":    "shortpass@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	token := login(t, app, "firstbuyer", "password123")
	assert.NotEmpty(t, token)

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "firstbuyer",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSellerCatalogAndStorefront(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	sellerToken := registerAndLogin(t, app, "gadgetshop", models.RoleSeller)
	buyerToken := registerAndLogin(t, app, "windowshopper", models.RoleBuyer)

	// Buyers cannot reach the seller portal
	resp := doJSON(t, app, http.MethodGet, "/api/v1/seller/products", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The seller lists a product; new listings start as drafts
	resp = doJSON(t, app, http.MethodPost, "/api/v1/seller/products", sellerToken, map[string]interface{}{
		"name":        "Mechanical Keyboard",
		"description": "Tactile switches",
		"price_cents": 12900,
		"stock":       10,
		"category":    "electronics",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "mechanical-keyboard", created.Slug)
	assert.Equal(t, models.ProductDraft, created.Status)

	// Drafts are invisible on the storefront
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Products   []models.Product `json:"products"`
		NextCursor string           `json:"next_cursor"`
	}
	decodeBody(t, resp, &listing)
	for _, p := range listing.Products {
		assert.NotEqual(t, created.ID, p.ID)
	}

	// Publishing makes it browsable
	resp = doJSON(t, app, http.MethodPut, "/api/v1/seller/products/"+created.ID, sellerToken, map[string]interface{}{
		"name":        "Mechanical Keyboard",
		"slug":        "mechanical-keyboard",
		"description": "Tactile switches",
		"price_cents": 12900,
		"stock":       10,
		"category":    "electronics",
		"status":      models.ProductActive,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, models.ProductActive, fetched.Status)

	// Another seller cannot edit it
	otherToken := registerAndLogin(t, app, "rivalshop", models.RoleSeller)
	resp = doJSON(t, app, http.MethodPut, "/api/v1/seller/products/"+created.ID, otherToken, map[string]interface{}{
		"name":        "Hijacked Listing",
		"price_cents": 1,
		"stock":       0,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Unknown product id is a 404
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderPaymentRefundFlow(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	sellerToken := registerAndLogin(t, app, "bookseller", models.RoleSeller)
	buyerToken := registerAndLogin(t, app, "avidreader", models.RoleBuyer)

	// Seller publishes a product
	resp := doJSON(t, app, http.MethodPost, "/api/v1/seller/products", sellerToken, map[string]interface{}{
		"name":        "Paperback Novel",
		"price_cents": 2500,
		"stock":       5,
		"status":      models.ProductActive,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)

	// Ordering more than the stock fails
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 50}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Buyer orders two copies
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, int64(5000), order.TotalCents)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, int64(2500), order.Items[0].UnitPriceCents)

	// Stock was reserved
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID, "", nil)
	var afterOrder models.Product
	decodeBody(t, resp, &afterOrder)
	assert.Equal(t, 3, afterOrder.Stock)

	// A stranger cannot read the order
	strangerToken := registerAndLogin(t, app, "nosyneighbor", models.RoleBuyer)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Buyer pays
	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments", buyerToken, map[string]interface{}{
		"order_id": order.ID,
		"currency": "USD",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var payment models.Payment
	decodeBody(t, resp, &payment)
	assert.Equal(t, int64(5000), payment.Amount)
	assert.Equal(t, models.PaymentSucceeded, payment.Status)

	// Paying twice fails: the order is no longer pending
	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments", buyerToken, map[string]interface{}{
		"order_id": order.ID,
		"currency": "USD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A refund request above the balance is clamped to it
	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments/"+payment.ID+"/refunds", buyerToken, map[string]interface{}{
		"amount_cents": 999999,
		"reason":       "order arrived damaged",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var refund models.Refund
	decodeBody(t, resp, &refund)
	assert.Equal(t, int64(5000), refund.Amount)

	// The emptied payment is refunded, as is its order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/payments/"+payment.ID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var settled models.Payment
	decodeBody(t, resp, &settled)
	assert.Equal(t, models.PaymentRefunded, settled.Status)
	assert.Equal(t, int64(5000), settled.Refunded)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, buyerToken, nil)
	var refundedOrder models.Order
	decodeBody(t, resp, &refundedOrder)
	assert.Equal(t, models.OrderRefunded, refundedOrder.Status)

	// Nothing is left to refund
	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments/"+payment.ID+"/refunds", buyerToken, map[string]interface{}{
		"amount_cents": 100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewFlow(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	sellerToken := registerAndLogin(t, app, "plantshop", models.RoleSeller)
	buyerToken := registerAndLogin(t, app, "greenfinger", models.RoleBuyer)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/seller/products", sellerToken, map[string]interface{}{
		"name":        "Monstera Cutting",
		"price_cents": 1500,
		"stock":       3,
		"status":      models.ProductActive,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)

	// First review lands
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/"+product.ID+"/reviews", buyerToken, map[string]interface{}{
		"rating": 5,
		"title":  "Thriving",
		"body":   "Rooted within two weeks.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The same buyer cannot review twice
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/"+product.ID+"/reviews", buyerToken, map[string]interface{}{
		"rating": 1,
		"body":   "Changed my mind.",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Ratings outside 1..5 fail validation
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/"+product.ID+"/reviews", sellerToken, map[string]interface{}{
		"rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The review shows up in the public listing, and the aggregate moved
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID+"/reviews", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reviewPage struct {
		Reviews    []models.Review `json:"reviews"`
		NextCursor string          `json:"next_cursor"`
	}
	decodeBody(t, resp, &reviewPage)
	assert.Len(t, reviewPage.Reviews, 1)
	assert.Equal(t, 5, reviewPage.Reviews[0].Rating)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID, "", nil)
	var rated models.Product
	decodeBody(t, resp, &rated)
	assert.Equal(t, 1, rated.RatingCount)
}

func TestForumFlow(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	adminToken := login(t, app, "rootadmin", "adminpassword")
	posterToken := registerAndLogin(t, app, "threadstarter", models.RoleBuyer)
	replierToken := registerAndLogin(t, app, "replyguy", models.RoleBuyer)

	// Only admins create categories
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/forum/categories", posterToken, map[string]string{"name": "General Discussion"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/forum/categories", adminToken, map[string]string{"name": "General Discussion"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)
	assert.Equal(t, "general-discussion", category.Slug)

	// Open a thread; its first post is created with it
	resp = doJSON(t, app, http.MethodPost, "/api/v1/forum/categories/general-discussion/threads", posterToken, map[string]string{
		"title": "Favorite sellers?",
		"body":  "Who do you keep coming back to?",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var thread models.Thread
	decodeBody(t, resp, &thread)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/forum/threads/"+thread.ID+"/posts", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var postPage struct {
		Posts      []models.Post `json:"posts"`
		NextCursor string        `json:"next_cursor"`
	}
	decodeBody(t, resp, &postPage)
	assert.Len(t, postPage.Posts, 1)

	// Someone replies
	resp = doJSON(t, app, http.MethodPost, "/api/v1/forum/threads/"+thread.ID+"/posts", replierToken, map[string]string{
		"body": "The plant shop, hands down.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Admin locks the thread; further replies bounce
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/admin/forum/threads/"+thread.ID, adminToken, map[string]interface{}{"locked": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/forum/threads/"+thread.ID+"/posts", replierToken, map[string]string{
		"body": "One more thing...",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Thread listing is public
	resp = doJSON(t, app, http.MethodGet, "/api/v1/forum/categories/general-discussion/threads", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var threadPage struct {
		Threads    []models.Thread `json:"threads"`
		NextCursor string          `json:"next_cursor"`
	}
	decodeBody(t, resp, &threadPage)
	assert.GreaterOrEqual(t, len(threadPage.Threads), 1)
}

func TestForumThreadPagingAcrossPinned(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	adminToken := login(t, app, "rootadmin", "adminpassword")
	posterToken := registerAndLogin(t, app, "pagewalker", models.RoleBuyer)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/forum/categories", adminToken, map[string]string{"name": "Paging Corner"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var threadIDs []string
	for _, title := range []string{"Oldest announcement", "Middle thread", "Newest thread"} {
		resp = doJSON(t, app, http.MethodPost, "/api/v1/forum/categories/paging-corner/threads", posterToken, map[string]string{
			"title": title,
			"body":  "First post of " + title,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var thread models.Thread
		decodeBody(t, resp, &thread)
		threadIDs = append(threadIDs, thread.ID)
		time.Sleep(5 * time.Millisecond)
	}

	// Pin the oldest thread so it jumps ahead of both newer ones
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/admin/forum/threads/"+threadIDs[0], adminToken, map[string]interface{}{"pinned": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Walk the listing one thread at a time; every thread must surface
	// even though the first page boundary lands on the pinned one
	seen := make(map[string]bool)
	var order []string
	cursor := ""
	for i := 0; i < 6; i++ {
		url := "/api/v1/forum/categories/paging-corner/threads?limit=1"
		if cursor != "" {
			url += "&cursor=" + cursor
		}
		resp = doJSON(t, app, http.MethodGet, url, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var page struct {
			Threads    []models.Thread `json:"threads"`
			NextCursor string          `json:"next_cursor"`
		}
		decodeBody(t, resp, &page)
		for _, thread := range page.Threads {
			assert.False(t, seen[thread.ID], "thread %s served twice", thread.ID)
			seen[thread.ID] = true
			order = append(order, thread.ID)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	assert.Len(t, order, 3)
	assert.Equal(t, threadIDs[0], order[0], "pinned thread leads")
	assert.True(t, seen[threadIDs[1]])
	assert.True(t, seen[threadIDs[2]])
}

func TestNotificationPreferences(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "quietuser", models.RoleBuyer)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page services.NotificationPage
	decodeBody(t, resp, &page)
	assert.Empty(t, page.Notifications)
	assert.Zero(t, page.UnreadCount)

	// Turn the forum toggle off
	resp = doJSON(t, app, http.MethodPut, "/api/v1/notifications/preferences", token, map[string]interface{}{"forum": false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var prefResp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	decodeBody(t, resp, &prefResp)
	assert.False(t, prefResp.User.NotifyForum)
	assert.True(t, prefResp.User.NotifyOrders)

	// Marking nothing read is a bad request
	resp = doJSON(t, app, http.MethodPost, "/api/v1/notifications/read", token, map[string]interface{}{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesWithoutToken(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	// The storefront is public
	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Orders, payments and notifications are not
	for _, path := range []string{"/api/v1/orders", "/api/v1/notifications"} {
		resp = doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": "irrelevant", "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
