// Package policy реализует клиентскую логику принятия решений по подпискам:
// классификацию статуса для отображения, вычисление доступных действий
// администратора, проверки смены ролей и границ настроек ставок.
//
// Все функции пакета чистые: не выполняют ввод-вывод, не имеют общего
// изменяемого состояния и безопасны для конкурентного вызова. Права и записи
// передаются явно, роль в права пакет не переводит.
package policy

import (
	"fmt"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// DefaultTrialDays длина пробного периода по умолчанию.
const DefaultTrialDays = 7

// Токены цвета для DisplayInfo.
const (
	ColorSuccess = "success"
	ColorInfo    = "info"
	ColorWarning = "warning"
	ColorError   = "error"
	ColorNeutral = "neutral"
)

// Токены иконок для DisplayInfo.
const (
	IconPaid    = "checkmark-circle"
	IconNew     = "gift"
	IconActive  = "time"
	IconExpired = "close-circle"
	IconUnknown = "help-circle"
)

// Engine классифицирует записи подписок. Длина пробного периода задаётся конфигом.
type Engine struct {
	trialDays int
}

// New создаёт Engine. Неположительная длина заменяется на DefaultTrialDays.
func New(trialDays int) *Engine {
	if trialDays <= 0 {
		trialDays = DefaultTrialDays
	}
	return &Engine{trialDays: trialDays}
}

// TrialDays возвращает настроенную длину пробного периода.
func (e *Engine) TrialDays() int {
	return e.trialDays
}

// Classify переводит запись подписки в описание для отображения.
// Функция тотальная: любая запись, в том числе невозможная, получает описание.
// Оплаченный статус имеет приоритет над статусом пробного периода.
func (e *Engine) Classify(record models.SubscriptionRecord) models.DisplayInfo {
	if record.IsPaidActive {
		return models.DisplayInfo{
			Label:       "Paid",
			ColorToken:  ColorSuccess,
			Description: "unlimited access to all features",
			IconToken:   IconPaid,
		}
	}

	switch record.TrialStatus {
	case models.TrialNotStarted:
		return models.DisplayInfo{
			Label:       "New",
			ColorToken:  ColorInfo,
			Description: fmt.Sprintf("%d free days available", e.trialDays),
			IconToken:   IconNew,
		}
	case models.TrialActive:
		days := 0
		if record.DaysRemaining != nil {
			days = *record.DaysRemaining
		}
		return models.DisplayInfo{
			Label:       fmt.Sprintf("Free (%dd)", days),
			ColorToken:  ColorWarning,
			Description: fmt.Sprintf("%d days of free trial remaining", days),
			IconToken:   IconActive,
		}
	case models.TrialExpired:
		return models.DisplayInfo{
			Label:       "Expired",
			ColorToken:  ColorError,
			Description: "trial expired - limited features",
			IconToken:   IconExpired,
		}
	default:
		return unknownDisplay
	}
}

var unknownDisplay = models.DisplayInfo{
	Label:       "Unknown",
	ColorToken:  ColorNeutral,
	Description: "status undetermined",
	IconToken:   IconUnknown,
}

// CheckRecord проверяет инварианты записи. Classify от результата не зависит,
// ошибка нужна вызывающему для логирования записей, которые бэкенд не должен
// присылать.
func CheckRecord(record models.SubscriptionRecord) error {
	if record.IsPaidActive {
		return nil
	}
	switch record.TrialStatus {
	case models.TrialNotStarted:
		return nil
	case models.TrialActive:
		if record.DaysRemaining == nil {
			return unknownState("user %s: active trial without remaining days", record.User)
		}
		if *record.DaysRemaining < 0 {
			return unknownState("user %s: negative remaining days %d", record.User, *record.DaysRemaining)
		}
		return nil
	case models.TrialExpired:
		if record.CanUsePremiumFeatures {
			return unknownState("user %s: expired trial with premium features", record.User)
		}
		return nil
	case models.TrialNotApplicable:
		return unknownState("user %s: trial not applicable for unpaid account", record.User)
	default:
		return unknownState("user %s: unknown trial status %q", record.User, record.TrialStatus)
	}
}
