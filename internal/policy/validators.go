package policy

import (
	"math"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
)

// Границы настроек ставок. Бэкенд остаётся источником истины,
// проверки здесь нужны, чтобы отказать до отправки запроса.
const (
	MinOddsLower = 1
	MinOddsUpper = 3
	MaxOddsLower = 1
	MaxOddsUpper = 5

	MaxMatchesLower = 1
	MaxMatchesUpper = 50

	GroloTotalOddsLower = 1000
	GroloTotalOddsUpper = 100000
	MiniTotalOddsLower  = 1000
	MiniTotalOddsUpper  = 10000

	DefaultStakeLower = 100
	DefaultStakeUpper = 100000

	// Ставка при исполнении уже, чем ставка по умолчанию в настройках.
	BetStakeLower = 100
	BetStakeUpper = 50000

	// MiniMatchCount число матчей в системе Mini.
	MiniMatchCount = 2
)

// ValidateGroloConfig проверяет настройки полной системы.
// Возвращает ошибку по первому нарушенному правилу.
func ValidateGroloConfig(cfg models.GroloConfig) error {
	if err := validateOdds(cfg.MinOdds, cfg.MaxOdds); err != nil {
		return err
	}
	if cfg.MaxMatches < MaxMatchesLower || cfg.MaxMatches > MaxMatchesUpper {
		return invalidRange("max matches must be between %d and %d", MaxMatchesLower, MaxMatchesUpper)
	}
	if outside(cfg.MaxTotalOdds, GroloTotalOddsLower, GroloTotalOddsUpper) {
		return invalidRange("max total odds must be between %d and %d", GroloTotalOddsLower, GroloTotalOddsUpper)
	}
	return validateDefaultStake(cfg.DefaultStake)
}

// ValidateMiniConfig проверяет настройки системы Mini. Потолок общего коэффициента
// у неё ниже, чем у полной системы.
func ValidateMiniConfig(cfg models.MiniConfig) error {
	if err := validateOdds(cfg.MinOdds, cfg.MaxOdds); err != nil {
		return err
	}
	if outside(cfg.MaxTotalOdds, MiniTotalOddsLower, MiniTotalOddsUpper) {
		return invalidRange("max total odds must be between %d and %d", MiniTotalOddsLower, MiniTotalOddsUpper)
	}
	return validateDefaultStake(cfg.DefaultStake)
}

// ValidateStake проверяет ставку при исполнении, в MGA.
func ValidateStake(stake int) error {
	if stake < BetStakeLower || stake > BetStakeUpper {
		return invalidRange("stake must be between %d and %d MGA", BetStakeLower, BetStakeUpper)
	}
	return nil
}

func validateOdds(minOdds, maxOdds float64) error {
	if outside(minOdds, MinOddsLower, MinOddsUpper) {
		return invalidRange("min odds must be between %d and %d", MinOddsLower, MinOddsUpper)
	}
	if outside(maxOdds, MaxOddsLower, MaxOddsUpper) {
		return invalidRange("max odds must be between %d and %d", MaxOddsLower, MaxOddsUpper)
	}
	if minOdds >= maxOdds {
		return invalidRange("min odds must be lower than max odds")
	}
	return nil
}

// outside сообщает, что v вне [lower, upper]. NaN считается вне диапазона.
func outside(v, lower, upper float64) bool {
	return math.IsNaN(v) || v < lower || v > upper
}

func validateDefaultStake(stake int) error {
	if stake < DefaultStakeLower || stake > DefaultStakeUpper {
		return invalidRange("default stake must be between %d and %d MGA", DefaultStakeLower, DefaultStakeUpper)
	}
	return nil
}

// ValidateSystem проверяет, что система ставок известна.
func ValidateSystem(system models.System) error {
	if !system.IsValid() {
		return invalidRange("system must be one of grolo, mini, got %q", system)
	}
	return nil
}
