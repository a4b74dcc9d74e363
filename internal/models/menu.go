package models

type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Category     string  `json:"category,omitempty"`
	IsAvailable  bool    `json:"is_available"`
	PrepTime     int     `json:"prep_time"`
}

// MenuItemUpdate описывает частичное обновление позиции меню:
// nil-поля не изменяются.
type MenuItemUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	PrepTime    *int     `json:"prep_time,omitempty"`
}
