package backend

import (
	"time"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Структуры ответов бэкенда. Поля-указатели позволяют отличить отсутствующее
// поле от нулевого значения.

type userPayload struct {
	Username *string `json:"username" validate:"required"`
	Email    string  `json:"email"`
	Role     *string `json:"role" validate:"required,oneof=user admin super_admin"`
	IsActive *bool   `json:"is_active" validate:"required"`
}

func (p userPayload) toModel() models.UserInfo {
	return models.UserInfo{
		Username: *p.Username,
		Email:    p.Email,
		Role:     models.Role(*p.Role),
		IsActive: *p.IsActive,
	}
}

type userListPayload struct {
	Items []userPayload `json:"items" validate:"dive"`
}

type loginPayload struct {
	AccessToken *string      `json:"access_token" validate:"required"`
	TokenType   string       `json:"token_type"`
	User        *userPayload `json:"user" validate:"required"`
}

type subscriptionPayload struct {
	User                  *string    `json:"user" validate:"required"`
	AccountType           *string    `json:"account_type" validate:"required,oneof=free paid"`
	IsPaidActive          *bool      `json:"is_paid_active" validate:"required"`
	AccessLevel           *string    `json:"access_level" validate:"required,oneof=full limited"`
	TrialStatus           *string    `json:"trial_status" validate:"required"`
	DaysRemaining         *int       `json:"days_remaining" validate:"omitempty,gte=0"`
	CreatedAt             *time.Time `json:"created_at" validate:"required"`
	CanUsePremiumFeatures *bool      `json:"can_use_premium_features" validate:"required"`
}

func (p subscriptionPayload) toModel() models.SubscriptionRecord {
	return models.SubscriptionRecord{
		User:                  *p.User,
		AccountType:           models.AccountType(*p.AccountType),
		IsPaidActive:          *p.IsPaidActive,
		AccessLevel:           models.AccessLevel(*p.AccessLevel),
		TrialStatus:           models.TrialStatus(*p.TrialStatus),
		DaysRemaining:         p.DaysRemaining,
		CreatedAt:             *p.CreatedAt,
		CanUsePremiumFeatures: *p.CanUsePremiumFeatures,
	}
}

type subscriptionListPayload struct {
	Items []subscriptionPayload `json:"items" validate:"dive"`
}

type permissionsPayload struct {
	CanPromote        *bool `json:"can_promote" validate:"required"`
	CanDemote         *bool `json:"can_demote" validate:"required"`
	CanActivatePaid   *bool `json:"can_activate_paid" validate:"required"`
	CanDeactivatePaid *bool `json:"can_deactivate_paid" validate:"required"`
	CanExtendTrial    *bool `json:"can_extend_trial" validate:"required"`
	CanViewAdminPanel *bool `json:"can_view_admin_panel" validate:"required"`
}

func (p permissionsPayload) toModel() models.AdminPermissionSet {
	return models.AdminPermissionSet{
		CanPromote:        *p.CanPromote,
		CanDemote:         *p.CanDemote,
		CanActivatePaid:   *p.CanActivatePaid,
		CanDeactivatePaid: *p.CanDeactivatePaid,
		CanExtendTrial:    *p.CanExtendTrial,
		CanViewAdminPanel: *p.CanViewAdminPanel,
	}
}

type groloConfigPayload struct {
	MinOdds      *float64 `json:"min_odds" validate:"required"`
	MaxOdds      *float64 `json:"max_odds" validate:"required"`
	MaxMatches   *int     `json:"max_matches" validate:"required"`
	MaxTotalOdds *float64 `json:"max_total_odds" validate:"required"`
	DefaultStake *int     `json:"default_stake" validate:"required"`
	AutoExecute  *bool    `json:"auto_execute" validate:"required"`
}

func (p groloConfigPayload) toModel() models.GroloConfig {
	return models.GroloConfig{
		MinOdds:      *p.MinOdds,
		MaxOdds:      *p.MaxOdds,
		MaxMatches:   *p.MaxMatches,
		MaxTotalOdds: *p.MaxTotalOdds,
		DefaultStake: *p.DefaultStake,
		AutoExecute:  *p.AutoExecute,
	}
}

type miniConfigPayload struct {
	MinOdds      *float64 `json:"min_odds" validate:"required"`
	MaxOdds      *float64 `json:"max_odds" validate:"required"`
	MaxTotalOdds *float64 `json:"max_total_odds" validate:"required"`
	DefaultStake *int     `json:"default_stake" validate:"required"`
	AutoExecute  *bool    `json:"auto_execute" validate:"required"`
}

func (p miniConfigPayload) toModel() models.MiniConfig {
	return models.MiniConfig{
		MinOdds:      *p.MinOdds,
		MaxOdds:      *p.MaxOdds,
		MaxTotalOdds: *p.MaxTotalOdds,
		DefaultStake: *p.DefaultStake,
		AutoExecute:  *p.AutoExecute,
	}
}

type matchPayload struct {
	ID        *string    `json:"id" validate:"required"`
	HomeTeam  *string    `json:"home_team" validate:"required"`
	AwayTeam  *string    `json:"away_team" validate:"required"`
	League    string     `json:"league"`
	KickoffAt *time.Time `json:"kickoff_at" validate:"required"`
	Odds      *float64   `json:"odds" validate:"required"`
}

func (p matchPayload) toModel() models.Match {
	return models.Match{
		ID:        *p.ID,
		HomeTeam:  *p.HomeTeam,
		AwayTeam:  *p.AwayTeam,
		League:    p.League,
		KickoffAt: *p.KickoffAt,
		Odds:      *p.Odds,
	}
}

type matchListPayload struct {
	Items []matchPayload `json:"items" validate:"dive"`
}

func toMatches(items []matchPayload) []models.Match {
	matches := make([]models.Match, 0, len(items))
	for _, m := range items {
		matches = append(matches, m.toModel())
	}
	return matches
}

type betResultPayload struct {
	BetID        *string        `json:"bet_id" validate:"required"`
	System       *string        `json:"system" validate:"required,oneof=grolo mini"`
	Stake        *int           `json:"stake" validate:"required"`
	TotalOdds    float64        `json:"total_odds"`
	PotentialWin float64        `json:"potential_win"`
	Matches      []matchPayload `json:"matches" validate:"dive"`
	Status       *string        `json:"status" validate:"required"`
}

func (p betResultPayload) toModel() models.BetResult {
	return models.BetResult{
		BetID:        *p.BetID,
		System:       models.System(*p.System),
		Stake:        *p.Stake,
		TotalOdds:    p.TotalOdds,
		PotentialWin: p.PotentialWin,
		Matches:      toMatches(p.Matches),
		Status:       *p.Status,
	}
}
