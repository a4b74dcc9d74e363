package models

import (
	"errors"

	"github.com/Renal37/campus-eats/internal/utils"
)

// DefaultCreditScore назначается каждому новому студенту при регистрации.
const DefaultCreditScore = 70

// Границы допустимого диапазона кредитного рейтинга.
const (
	MinCreditScore = 0
	MaxCreditScore = 100
)

// CreditTier определяет уровень доверия, производный от текущего рейтинга.
type CreditTier string

const (
	TierTrusted CreditTier = "TRUSTED"
	TierGood    CreditTier = "GOOD"
	TierAverage CreditTier = "AVERAGE"
	TierRisky   CreditTier = "RISKY"
	TierBlocked CreditTier = "BLOCKED"
)

// TierForScore вычисляет уровень доверия по текущему рейтингу.
// Функция монотонна: больший рейтинг никогда не дает уровень ниже.
func TierForScore(score int) CreditTier {
	switch {
	case score >= 90:
		return TierTrusted
	case score >= 75:
		return TierGood
	case score >= 50:
		return TierAverage
	case score >= 30:
		return TierRisky
	default:
		return TierBlocked
	}
}

// DiscountPercent возвращает процент скидки, применяемый при оформлении заказа.
func (t CreditTier) DiscountPercent() int {
	switch t {
	case TierTrusted:
		return 10
	case TierGood:
		return 5
	default:
		return 0
	}
}

// ClampScore ограничивает рейтинг диапазоном [0, 100].
// Ограничение применяется после каждого отдельного изменения, а не только в конце.
func ClampScore(score int) int {
	if score < MinCreditScore {
		return MinCreditScore
	}
	if score > MaxCreditScore {
		return MaxCreditScore
	}
	return score
}

// CreditEventKind перечисляет исходы, влияющие на рейтинг студента.
type CreditEventKind string

const (
	EventOnTimeDelivery    CreditEventKind = "ON_TIME_DELIVERY"
	EventNoShow            CreditEventKind = "NO_SHOW"
	EventLateCancellation  CreditEventKind = "LATE_CANCELLATION"
	EventEarlyCancellation CreditEventKind = "EARLY_CANCELLATION"
	EventPositiveFeedback  CreditEventKind = "POSITIVE_FEEDBACK"
	EventNegativeFeedback  CreditEventKind = "NEGATIVE_FEEDBACK"
	EventAdminOverride     CreditEventKind = "ADMIN_OVERRIDE"
	EventNoFault           CreditEventKind = "NO_FAULT"
)

// Delta возвращает изменение рейтинга для события.
// Для EventAdminOverride дельта не определена: рейтинг устанавливается напрямую.
func (k CreditEventKind) Delta() (int, bool) {
	switch k {
	case EventOnTimeDelivery:
		return 2, true
	case EventNoShow:
		return -10, true
	case EventLateCancellation:
		return -5, true
	case EventEarlyCancellation:
		return -1, true
	case EventPositiveFeedback:
		return 3, true
	case EventNegativeFeedback:
		return -3, true
	case EventNoFault:
		return 0, true
	default:
		return 0, false
	}
}

// CreditEvent описывает одно изменение рейтинга студента.
type CreditEvent struct {
	Kind        CreditEventKind
	Override    *int   // только для EventAdminOverride
	Reason      string
	Actor       string // system, admin, restaurant
	OrderNumber string // номер заказа, вызвавшего событие, если есть
}

var errUnknownCreditEvent = errors.New("неизвестное событие кредитного рейтинга")

// NextScore вычисляет новый рейтинг после применения события.
// Результат всегда ограничен диапазоном [0, 100], включая административную
// установку рейтинга.
func NextScore(current int, event CreditEvent) (int, error) {
	if event.Kind == EventAdminOverride {
		if event.Override == nil {
			return current, errUnknownCreditEvent
		}
		return ClampScore(*event.Override), nil
	}

	delta, ok := event.Kind.Delta()
	if !ok {
		return current, errUnknownCreditEvent
	}

	return ClampScore(current + delta), nil
}

// CreditChange описывает одну запись истории изменений рейтинга.
type CreditChange struct {
	OldScore     int               `json:"old_score"`
	NewScore     int               `json:"new_score"`
	ChangeAmount int               `json:"change_amount"`
	Reason       string            `json:"reason"`
	TriggeredBy  string            `json:"triggered_by"`
	OrderNumber  string            `json:"order_number,omitempty"`
	CreatedAt    utils.RFC3339Date `json:"created_at"`
}

// CreditOverride представляет запрос администратора на прямую установку рейтинга.
type CreditOverride struct {
	Score  *int   `json:"score"`
	Reason string `json:"reason"`
}

// UserStats объединяет рейтинг, статистику заказов и историю изменений.
type UserStats struct {
	CreditScore     int            `json:"credit_score"`
	CreditStatus    CreditTier     `json:"credit_status"`
	TotalOrders     int            `json:"total_orders"`
	DeliveredOrders int            `json:"delivered_orders"`
	CancelledOrders int            `json:"cancelled_orders"`
	AvgFeedback     float64        `json:"avg_feedback"`
	History         []CreditChange `json:"history"`
}
