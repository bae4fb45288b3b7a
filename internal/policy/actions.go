package policy

import "github.com/magabrotheeeer/grolo-gateway/internal/models"

// MaxTrialExtensionDays верхняя граница продления пробного периода за один запрос.
const MaxTrialExtensionDays = 365

// ResolveActions вычисляет действия, доступные вызывающему над записью.
// Отключить оплату у самого себя нельзя даже при наличии права.
func ResolveActions(record models.SubscriptionRecord, isCallerSameUser bool, permissions models.AdminPermissionSet) models.AvailableActions {
	return models.AvailableActions{
		CanActivatePaid:   !record.IsPaidActive && permissions.CanActivatePaid,
		CanDeactivatePaid: record.IsPaidActive && !isCallerSameUser && permissions.CanDeactivatePaid,
		CanExtendTrial:    !record.IsPaidActive && permissions.CanExtendTrial,
		CanViewDetails:    true,
	}
}

// ValidateTrialExtension проверяет количество дней продления: 1..365 включительно.
func ValidateTrialExtension(days int) error {
	if days <= 0 {
		return invalidRange("extension days must be positive, got %d", days)
	}
	if days > MaxTrialExtensionDays {
		return invalidRange("extension days must not exceed %d, got %d", MaxTrialExtensionDays, days)
	}
	return nil
}

// CheckActivate возвращает ошибку, если вызывающий не может включить оплату.
func CheckActivate(record models.SubscriptionRecord, permissions models.AdminPermissionSet) error {
	if record.IsPaidActive {
		return permissionDenied("user %s already has paid access", record.User)
	}
	if !permissions.CanActivatePaid {
		return permissionDenied("not allowed to activate paid access")
	}
	return nil
}

// CheckDeactivate возвращает ошибку, если вызывающий не может отключить оплату.
func CheckDeactivate(record models.SubscriptionRecord, isCallerSameUser bool, permissions models.AdminPermissionSet) error {
	if isCallerSameUser {
		return selfActionForbidden("cannot deactivate your own paid access")
	}
	if !record.IsPaidActive {
		return permissionDenied("user %s has no paid access to deactivate", record.User)
	}
	if !permissions.CanDeactivatePaid {
		return permissionDenied("not allowed to deactivate paid access")
	}
	return nil
}

// CheckExtend проверяет и количество дней, и право продления.
func CheckExtend(record models.SubscriptionRecord, days int, permissions models.AdminPermissionSet) error {
	if err := ValidateTrialExtension(days); err != nil {
		return err
	}
	if record.IsPaidActive {
		return permissionDenied("user %s has paid access, trial cannot be extended", record.User)
	}
	if !permissions.CanExtendTrial {
		return permissionDenied("not allowed to extend trial")
	}
	return nil
}
