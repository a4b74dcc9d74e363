package models

import (
	"github.com/Renal37/campus-eats/internal/utils"
)

// Границы шкалы оценок обратной связи о студенте.
const (
	MinFeedbackRating = 1
	MaxFeedbackRating = 5
)

// PositiveFeedbackThreshold — средняя оценка, начиная с которой обратная
// связь считается положительной и повышает рейтинг студента.
const PositiveFeedbackThreshold = 4.0

// NewFeedback представляет оценку студента владельцем точки после выдачи заказа.
type NewFeedback struct {
	OrderNumber  string `json:"order_number"`
	Politeness   int    `json:"politeness"`
	Punctuality  int    `json:"punctuality"`
	Authenticity int    `json:"authenticity"`
	Comments     string `json:"comments,omitempty"`
}

// Overall возвращает среднюю оценку по трем критериям.
func (f NewFeedback) Overall() float64 {
	return float64(f.Politeness+f.Punctuality+f.Authenticity) / 3
}

type Feedback struct {
	ID           int64             `json:"id"`
	OrderNumber  string            `json:"order_number"`
	CustomerName string            `json:"customer_name"`
	Politeness   int               `json:"politeness"`
	Punctuality  int               `json:"punctuality"`
	Authenticity int               `json:"authenticity"`
	Overall      float64           `json:"overall"`
	Comments     string            `json:"comments,omitempty"`
	CreditChange int               `json:"credit_change"`
	CreatedAt    utils.RFC3339Date `json:"created_at"`
}

// FeedbackStats — сводка обратной связи точки питания.
type FeedbackStats struct {
	AverageRating   float64 `json:"average_rating"`
	TotalFeedback   int     `json:"total_feedback"`
	MonthlyFeedback int     `json:"monthly_feedback"`
	ResponseRate    float64 `json:"response_rate"`
}
