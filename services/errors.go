package services

import "errors"

// Общие ошибки сервисного слоя; маппинг в HTTP-статусы живёт в handlers.
var (
	// Валидация входа: ничего не мутируем, сразу отвечаем.
	ErrInvalidAlliance         = errors.New("alliance must be red or blue")
	ErrInvalidInspectionStatus = errors.New("inspection status must be pending, passed or failed")
	ErrInvalidCardColor        = errors.New("card must be red or yellow")
	ErrInvalidRole             = errors.New("role must be referee, head_referee or admin")
	ErrInvalidScheduleFile     = errors.New("invalid schedule file")

	// Ресурс не найден.
	ErrMatchNotFound = errors.New("match not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrUserNotFound  = errors.New("user not found")

	// Нарушение инвариантов финализации.
	ErrScoresNotSubmitted    = errors.New("scores for both alliances must be submitted before finalisation")
	ErrScoreAlreadyFinalised = errors.New("score already finalised")

	// Аутентификация и конфликты регистрации.
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserUsernameConflict = errors.New("username is already taken")
	ErrUserEmailConflict    = errors.New("email is already registered")
)
