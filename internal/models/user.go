package models

// Role роль пользователя в системе.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid проверяет, что роль входит в известный словарь.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin возвращает true для admin и super_admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin возвращает true только для super_admin.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// AdminPermissionSet права вызывающего пользователя. Вычисляются на стороне бэкенда
// из роли и используются шлюзом как есть.
type AdminPermissionSet struct {
	CanPromote        bool `json:"can_promote"`
	CanDemote         bool `json:"can_demote"`
	CanActivatePaid   bool `json:"can_activate_paid"`
	CanDeactivatePaid bool `json:"can_deactivate_paid"`
	CanExtendTrial    bool `json:"can_extend_trial"`
	CanViewAdminPanel bool `json:"can_view_admin_panel"`
}

// UserInfo представляет пользователя, как его возвращает бэкенд.
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

// LoginRequest используется для приёма учётных данных из JSON-запроса.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult ответ бэкенда на успешный вход.
type LoginResult struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// Caller вызывающий пользователь, извлечённый из проверенного токена.
// Token передаётся в бэкенд без изменений.
type Caller struct {
	Username string
	Role     Role
	Token    string
}
