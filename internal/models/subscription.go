// Package models содержит доменные структуры шлюза: подписку пользователя,
// набор административных прав, роли и модели футбольных ставок.
// Структуры заполняются из ответов бэкенда и не хранятся локально.
package models

import "time"

// AccountType тип учётной записи пользователя.
type AccountType string

const (
	// AccountFree бесплатный аккаунт (пробный период или ограниченный доступ).
	AccountFree AccountType = "free"
	// AccountPaid оплаченный аккаунт.
	AccountPaid AccountType = "paid"
)

// AccessLevel уровень доступа, зеркалит статус оплаты.
type AccessLevel string

const (
	AccessFull    AccessLevel = "full"
	AccessLimited AccessLevel = "limited"
)

// TrialStatus состояние пробного периода.
type TrialStatus string

const (
	TrialNotStarted    TrialStatus = "not_started"
	TrialActive        TrialStatus = "active"
	TrialExpired       TrialStatus = "expired"
	TrialNotApplicable TrialStatus = "not_applicable"
)

// SubscriptionRecord снимок состояния подписки пользователя, как его вернул бэкенд.
// DaysRemaining равен nil, когда неприменимо (например, у оплаченного аккаунта).
type SubscriptionRecord struct {
	User                  string      `json:"user"`
	AccountType           AccountType `json:"account_type"`
	IsPaidActive          bool        `json:"is_paid_active"`
	AccessLevel           AccessLevel `json:"access_level"`
	TrialStatus           TrialStatus `json:"trial_status"`
	DaysRemaining         *int        `json:"days_remaining"`
	CreatedAt             time.Time   `json:"created_at"`
	CanUsePremiumFeatures bool        `json:"can_use_premium_features"`
}

// DisplayInfo описание статуса подписки для показа пользователю.
// Всегда вычисляется заново из SubscriptionRecord.
type DisplayInfo struct {
	Label       string `json:"label"`
	ColorToken  string `json:"color_token"`
	Description string `json:"description"`
	IconToken   string `json:"icon_token"`
}

// AvailableActions действия, доступные вызывающему над подпиской.
type AvailableActions struct {
	CanActivatePaid   bool `json:"can_activate_paid"`
	CanDeactivatePaid bool `json:"can_deactivate_paid"`
	CanExtendTrial    bool `json:"can_extend_trial"`
	CanViewDetails    bool `json:"can_view_details"`
}

// SubscriptionView финальный ответ по подписке: запись, её отображение и доступные действия.
type SubscriptionView struct {
	Record  SubscriptionRecord `json:"record"`
	Display DisplayInfo        `json:"display"`
	Actions AvailableActions   `json:"actions"`
}

// ExtendTrialRequest используется для приёма количества дней продления из JSON-запроса.
type ExtendTrialRequest struct {
	Days int `json:"days"`
}
