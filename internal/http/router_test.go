package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Renal37/campus-eats/internal/models"
	mock_models "github.com/Renal37/campus-eats/internal/models/mocks"
	"github.com/Renal37/campus-eats/internal/services"
	"github.com/Renal37/campus-eats/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func authorizedUser(jwtServiceMock *mock_models.MockJWTService, authServiceMock *mock_models.MockAuthService, user *models.User) {
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": user.Email,
		})

	jwtServiceMock.EXPECT().ValidateToken("token").Return(token, nil)
	authServiceMock.EXPECT().GetUser(gomock.Any(), user.Email).Return(user, nil)
}

func student() *models.User {
	return &models.User{ID: 1, Email: "student@edu.ru", Role: models.RoleCustomer, CreditScore: 70, IsActive: true}
}

func restaurantOwner() *models.User {
	return &models.User{ID: 2, Email: "owner@edu.ru", Role: models.RoleRestaurant, IsActive: true}
}

func TestRegisterRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, nil, nil, nil, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		methodName      string
		targetURL       string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Should return a validation error due to missing body",
			methodName:      "POST",
			targetURL:       "/api/user/register",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Error occurred during unmarshaling data unexpected end of JSON input\n",
		},
		{
			testName:   "Should return a validation error due to missing user email",
			methodName: "POST",
			targetURL:  "/api/user/register",
			body: func() io.Reader {
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Request doesn't contain email or password\n",
		},
		{
			testName:   "Should return a validation error due to missing user password",
			methodName: "POST",
			targetURL:  "/api/user/register",
			body: func() io.Reader {
				Email := "student@edu.ru"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Request doesn't contain email or password\n",
		},
		{
			testName:   "Should return error when user is already registered",
			methodName: "POST",
			targetURL:  "/api/user/register",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				jwtServiceMock.EXPECT().GenerateJWT("student@edu.ru").Return("token", nil)
				authServiceMock.EXPECT().Register(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(services.ErrUserIsAlreadyRegistered)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "User is already registered\n",
		},
		{
			testName:   "Should return a validation error for an unsupported role",
			methodName: "POST",
			targetURL:  "/api/user/register",
			test: func(t *testing.T) {
				jwtServiceMock.EXPECT().GenerateJWT("student@edu.ru").Return("token", nil)
				authServiceMock.EXPECT().Register(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: недопустимая роль %q", services.ErrValidation, "admin"))
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				Role := models.RoleAdmin
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password, Role: &Role})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "некорректные входные данные: недопустимая роль \"admin\"\n",
		},
		{
			testName:   "Should register user",
			methodName: "POST",
			targetURL:  "/api/user/register",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				jwtServiceMock.EXPECT().GenerateJWT("student@edu.ru").Return("token", nil)
				authServiceMock.EXPECT().Register(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(nil)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				tc.methodName,
				tc.targetURL,
				map[string]string{"Content-Type": "application/json"},
				body,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestLoginRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, nil, nil, nil, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		methodName      string
		targetURL       string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
		testHeader      func(t *testing.T, header http.Header)
	}{
		{
			testName:   "Should return error when user isn't exist",
			methodName: "POST",
			targetURL:  "/api/user/login",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(services.ErrUserIsNotExist)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "User student@edu.ru is not exist\n",
		},
		{
			testName:   "Should return error when password isn't correct",
			methodName: "POST",
			targetURL:  "/api/user/login",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(services.ErrPasswordIsIncorrect)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Password is not correct\n",
		},
		{
			testName:   "Should return error when account is deactivated",
			methodName: "POST",
			targetURL:  "/api/user/login",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(services.ErrUserIsInactive)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Account is deactivated\n",
		},
		{
			testName:   "Should return authorization header",
			methodName: "POST",
			targetURL:  "/api/user/login",
			test: func(t *testing.T) {
				Email := "student@edu.ru"
				Password := "123"

				jwtServiceMock.EXPECT().GenerateJWT("student@edu.ru").Return("token", nil)
				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Email: &Email, Password: &Password}).Return(nil)
			},
			body: func() io.Reader {
				Email := "student@edu.ru"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Email: &Email, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "",
			testHeader: func(t *testing.T, header http.Header) {
				assert.Equal(t, "Bearer token", header.Get("Authorization"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				tc.methodName,
				tc.targetURL,
				map[string]string{"Content-Type": "application/json"},
				body,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)

			if tc.testHeader != nil {
				tc.testHeader(t, res.Header)
			}
		})
	}
}

func TestCheckoutRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)
	cartServiceMock := mock_models.NewMockCartService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, orderServiceMock, nil, cartServiceMock, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	cart := models.Cart{
		RestaurantID: 10,
		Items:        []models.CartItem{{MenuItemID: 100, Name: "Plov", Price: 100, Quantity: 1}},
	}
	request := models.NewOrder{
		RestaurantID:  10,
		TimeSlot:      "12:00-12:30",
		Address:       "Dorm 4, room 112",
		PaymentMethod: "card",
	}

	testCases := []struct {
		testName        string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should create order from the cart",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, student())

				cartServiceMock.EXPECT().Get(int64(1)).Return(&cart)
				orderServiceMock.EXPECT().Checkout(gomock.Any(), int64(1), cart, request).Return(&models.CreatedOrder{
					Number:          "order-1",
					TotalAmount:     100,
					DiscountApplied: 0,
					FinalAmount:     130,
				}, nil)
				cartServiceMock.EXPECT().Clear(int64(1))
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "{\"order_number\":\"order-1\",\"total_amount\":100,\"discount_applied\":0,\"final_amount\":130}",
		},
		{
			testName: "Should return error when ordering is blocked",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, student())

				cartServiceMock.EXPECT().Get(int64(1)).Return(&cart)
				orderServiceMock.EXPECT().Checkout(gomock.Any(), int64(1), cart, request).Return(nil, services.ErrAccountBlocked)
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Ordering is blocked due to low credit score\n",
		},
		{
			testName: "Should deny checkout for a restaurant account",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, restaurantOwner())
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Access is denied for this role\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			data, _ := json.Marshal(request)

			res, mes := utils.TestRequest(
				t,
				testServer,
				"POST",
				"/api/orders",
				map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
				bytes.NewBuffer(data),
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestUpdateOrderStatusRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, orderServiceMock, nil, nil, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should advance order status",
			test: func(t *testing.T) {
				owner := restaurantOwner()
				authorizedUser(jwtServiceMock, authServiceMock, owner)

				orderServiceMock.EXPECT().Advance(gomock.Any(), "order-1", models.StatusPreparing, owner).Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "",
		},
		{
			testName: "Should return conflict for a skipped status",
			test: func(t *testing.T) {
				owner := restaurantOwner()
				authorizedUser(jwtServiceMock, authServiceMock, owner)

				orderServiceMock.EXPECT().Advance(gomock.Any(), "order-1", models.StatusPreparing, owner).Return(services.ErrIllegalTransition)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Status transition is not allowed\n",
		},
		{
			testName: "Should return error when order belongs to another restaurant",
			test: func(t *testing.T) {
				owner := restaurantOwner()
				authorizedUser(jwtServiceMock, authServiceMock, owner)

				orderServiceMock.EXPECT().Advance(gomock.Any(), "order-1", models.StatusPreparing, owner).Return(services.ErrNotPermitted)
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Order belongs to another restaurant\n",
		},
		{
			testName: "Should return conflict for a concurrent update",
			test: func(t *testing.T) {
				owner := restaurantOwner()
				authorizedUser(jwtServiceMock, authServiceMock, owner)

				orderServiceMock.EXPECT().Advance(gomock.Any(), "order-1", models.StatusPreparing, owner).Return(services.ErrConflict)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Order was modified by a concurrent request\n",
		},
		{
			testName: "Should deny status update for a customer",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, student())
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Access is denied for this role\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			data, _ := json.Marshal(models.StatusUpdate{Status: models.StatusPreparing})

			res, mes := utils.TestRequest(
				t,
				testServer,
				"PATCH",
				"/api/orders/order-1/status",
				map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
				bytes.NewBuffer(data),
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestCancelOrderRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, orderServiceMock, nil, nil, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	cancellation := models.Cancellation{Reason: "changed my mind"}

	testCases := []struct {
		testName        string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should cancel order",
			test: func(t *testing.T) {
				user := student()
				authorizedUser(jwtServiceMock, authServiceMock, user)

				orderServiceMock.EXPECT().Cancel(gomock.Any(), "order-1", user, cancellation).Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "",
		},
		{
			testName: "Should return conflict for a terminal order",
			test: func(t *testing.T) {
				user := student()
				authorizedUser(jwtServiceMock, authServiceMock, user)

				orderServiceMock.EXPECT().Cancel(gomock.Any(), "order-1", user, cancellation).Return(services.ErrIllegalTransition)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Order is already in a terminal status\n",
		},
		{
			testName: "Should return error for a foreign order",
			test: func(t *testing.T) {
				user := student()
				authorizedUser(jwtServiceMock, authServiceMock, user)

				orderServiceMock.EXPECT().Cancel(gomock.Any(), "order-1", user, cancellation).Return(services.ErrNotPermitted)
			},
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Cancellation is not permitted for this user\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			data, _ := json.Marshal(cancellation)

			res, mes := utils.TestRequest(
				t,
				testServer,
				"POST",
				"/api/orders/order-1/cancel",
				map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
				bytes.NewBuffer(data),
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestGetUserStatsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	creditServiceMock := mock_models.NewMockCreditService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, nil, creditServiceMock, nil, nil, nil, nil, nil, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should return user stats",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, student())

				creditServiceMock.EXPECT().GetUserStats(gomock.Any(), int64(1)).Return(&models.UserStats{
					CreditScore:     72,
					CreditStatus:    models.TierAverage,
					TotalOrders:     5,
					DeliveredOrders: 4,
					CancelledOrders: 1,
					AvgFeedback:     4.5,
					History:         []models.CreditChange{},
				}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "{\"credit_score\":72,\"credit_status\":\"AVERAGE\",\"total_orders\":5,\"delivered_orders\":4,\"cancelled_orders\":1,\"avg_feedback\":4.5,\"history\":[]}",
		},
		{
			testName: "Should return error when credit profile is not found",
			test: func(t *testing.T) {
				authorizedUser(jwtServiceMock, authServiceMock, student())

				creditServiceMock.EXPECT().GetUserStats(gomock.Any(), int64(1)).Return(nil, services.ErrProfileNotFound)
			},
			expectedCode:    http.StatusNotFound,
			expectedMessage: "Credit profile is not found\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				"GET",
				"/api/user/stats",
				map[string]string{"Authorization": "Bearer token"},
				nil,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}
