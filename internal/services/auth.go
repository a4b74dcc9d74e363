package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Определение пользовательских ошибок
var (
	ErrUserIsAlreadyRegistered = errors.New("пользователь уже зарегистрирован")
	ErrUserIsNotExist          = errors.New("пользователь не существует")
	ErrPasswordIsIncorrect     = errors.New("пароль неверен")
	ErrUserIsInactive          = errors.New("учетная запись деактивирована")
)

// AuthService представляет сервис для аутентификации и управления пользователями
type AuthService struct {
	storage AuthStorage
}

// AuthStorage определяет интерфейс для взаимодействия с хранилищем данных пользователей
type AuthStorage interface {
	CreateUser(ctx context.Context, user database.UserDB) (int64, error)
	FindUser(ctx context.Context, email string) (*database.UserDB, error)
}

// NewAuthService создает новый экземпляр AuthService с заданным хранилищем
func NewAuthService(storage AuthStorage) *AuthService {
	return &AuthService{storage: storage}
}

// Register регистрирует нового пользователя. Каждый новый студент получает
// кредитный рейтинг по умолчанию и уровень доверия AVERAGE.
func (auth *AuthService) Register(ctx context.Context, user models.UnknownUser) error {
	if err := validateUser(user); err != nil {
		return err
	}

	role := models.RoleCustomer
	if user.Role != nil {
		switch *user.Role {
		case models.RoleCustomer, models.RoleRestaurant:
			role = *user.Role
		default:
			return fmt.Errorf("%w: недопустимая роль %q", ErrValidation, *user.Role)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хэшировании пароля: %w", err)
	}

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}

	_, err = auth.storage.CreateUser(ctx, database.UserDB{
		User: models.User{
			Email:        *user.Email,
			Hash:         string(hashedPassword),
			Name:         name,
			Phone:        phone,
			Role:         role,
			CreditScore:  models.DefaultCreditScore,
			CreditStatus: models.TierForScore(models.DefaultCreditScore),
		},
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return ErrUserIsAlreadyRegistered
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

// Login выполняет аутентификацию пользователя
func (auth *AuthService) Login(ctx context.Context, user models.UnknownUser) error {
	if err := validateUser(user); err != nil {
		return err
	}

	u, err := auth.storage.FindUser(ctx, *user.Email)
	if err != nil {
		return fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if u == nil {
		return ErrUserIsNotExist
	}

	if !u.IsActive {
		return ErrUserIsInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(*user.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordIsIncorrect
		}
		return fmt.Errorf("ошибка при сравнении паролей: %w", err)
	}

	return nil
}

// GetUser возвращает информацию о пользователе по email
func (auth *AuthService) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := auth.storage.FindUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if user == nil {
		return nil, ErrUserIsNotExist
	}

	return &user.User, nil
}

// validateUser проверяет валидность входных данных пользователя
func validateUser(user models.UnknownUser) error {
	if user.Email == nil || *user.Email == "" {
		return errors.New("email не может быть пустым")
	}
	if user.Password == nil || *user.Password == "" {
		return errors.New("пароль не может быть пустым")
	}
	return nil
}
