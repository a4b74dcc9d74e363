package models

// Роли пользователей системы предзаказа еды.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
)

// UnknownUser представляет данные регистрации или входа до их проверки.
type UnknownUser struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

type User struct {
	ID           int64
	Email        string
	Hash         string
	Name         string
	Phone        string
	Role         Role
	CreditScore  int
	CreditStatus CreditTier
	IsActive     bool
}
