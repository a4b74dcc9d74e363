package models

import (
	"github.com/Renal37/campus-eats/internal/utils"
)

// OrderStatus описывает текущее состояние заказа.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Next возвращает единственный допустимый следующий статус в прямой цепочке
// PLACED -> PREPARING -> READY -> DELIVERED. Для терминальных статусов
// возвращает false.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPlaced:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// IsTerminal сообщает, что из статуса нет дальнейших переходов.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsValid проверяет, что статус принадлежит известному набору.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem хранит снимок позиции меню на момент оформления заказа:
// цена фиксируется и не меняется при последующих правках меню.
type OrderItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type Order struct {
	Number              string            `json:"number"`
	RestaurantID        int64             `json:"restaurant_id"`
	RestaurantName      string            `json:"restaurant_name,omitempty"`
	CustomerName        string            `json:"customer_name,omitempty"`
	Status              OrderStatus       `json:"status"`
	TimeSlot            string            `json:"time_slot"`
	Items               []OrderItem       `json:"items,omitempty"`
	TotalAmount         float64           `json:"total_amount"`
	DeliveryFee         float64           `json:"delivery_fee"`
	DiscountAmount      float64           `json:"discount_amount"`
	FinalAmount         float64           `json:"final_amount"`
	DeliveryAddress     string            `json:"delivery_address"`
	PaymentMethod       string            `json:"payment_method"`
	CustomerCreditScore int               `json:"customer_credit_score"`
	CancelledBy         string            `json:"cancelled_by,omitempty"`
	CancellationReason  string            `json:"cancellation_reason,omitempty"`
	CreatedAt           utils.RFC3339Date `json:"created_at"`
}

// NewOrder представляет запрос на оформление заказа из корзины.
type NewOrder struct {
	RestaurantID  int64  `json:"restaurant_id"`
	TimeSlot      string `json:"time_slot"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// CreatedOrder возвращается клиенту после успешного оформления.
type CreatedOrder struct {
	Number          string  `json:"order_number"`
	TotalAmount     float64 `json:"total_amount"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalAmount     float64 `json:"final_amount"`
	Warning         string  `json:"warning,omitempty"`
}

// StatusUpdate представляет запрос владельца точки на смену статуса заказа.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// Cancellation представляет запрос на отмену заказа.
// NoShow выставляет владелец точки, если студент не забрал готовый заказ.
type Cancellation struct {
	Reason string `json:"reason"`
	NoShow bool   `json:"no_show,omitempty"`
}
