package models

// CartItem хранит выбранную позицию меню и её количество.
// Название и цена копируются из меню на момент добавления.
type CartItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Cart — корзина студента для одной точки питания. Корзина живет только в
// памяти процесса на время сессии и не сохраняется в базе.
type Cart struct {
	RestaurantID int64      `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
}

// CartUpdate представляет запрос на добавление или изменение позиции корзины.
type CartUpdate struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// TotalQuantity возвращает суммарное количество позиций в корзине.
func (c Cart) TotalQuantity() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
