package models

import "time"

// System вариант продукта ставок.
type System string

const (
	// SystemGrolo полная система с настраиваемым числом матчей.
	SystemGrolo System = "grolo"
	// SystemMini упрощённая система ровно на два матча.
	SystemMini System = "mini"
)

// IsValid проверяет, что система известна.
func (s System) IsValid() bool {
	return s == SystemGrolo || s == SystemMini
}

// GroloConfig настройки полной системы.
type GroloConfig struct {
	MinOdds      float64 `json:"min_odds" validate:"required"`
	MaxOdds      float64 `json:"max_odds" validate:"required"`
	MaxMatches   int     `json:"max_matches" validate:"required"`
	MaxTotalOdds float64 `json:"max_total_odds" validate:"required"`
	DefaultStake int     `json:"default_stake" validate:"required"`
	AutoExecute  bool    `json:"auto_execute"`
}

// MiniConfig настройки системы Mini. Число матчей фиксировано.
type MiniConfig struct {
	MinOdds      float64 `json:"min_odds" validate:"required"`
	MaxOdds      float64 `json:"max_odds" validate:"required"`
	MaxTotalOdds float64 `json:"max_total_odds" validate:"required"`
	DefaultStake int     `json:"default_stake" validate:"required"`
	AutoExecute  bool    `json:"auto_execute"`
}

// Match матч-кандидат для ставки.
type Match struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	League    string    `json:"league"`
	KickoffAt time.Time `json:"kickoff_at"`
	Odds      float64   `json:"odds"`
}

// BetRequest запрос на исполнение ставки, отправляемый в бэкенд.
type BetRequest struct {
	System System `json:"system"`
	Stake  int    `json:"stake"`
}

// BetExecuteRequest используется для приёма параметров ставки из JSON-запроса.
type BetExecuteRequest struct {
	System string `json:"system" validate:"required,oneof=grolo mini"`
	Stake  int    `json:"stake"`
}

// BetResult результат исполнения ставки.
type BetResult struct {
	BetID        string  `json:"bet_id"`
	System       System  `json:"system"`
	Stake        int     `json:"stake"`
	TotalOdds    float64 `json:"total_odds"`
	PotentialWin float64 `json:"potential_win"`
	Matches      []Match `json:"matches"`
	Status       string  `json:"status"`
}

// AutoExecutionRequest переключает автоматическое исполнение ставки в 00:00 по Мадагаскару.
type AutoExecutionRequest struct {
	System  string `json:"system" validate:"required,oneof=grolo mini"`
	Enabled *bool  `json:"enabled" validate:"required"`
}
