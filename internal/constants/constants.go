package constants

// Centralized constants for env keys, routes and API error strings.
const (
	// Environment variable keys
	EnvConfigPath = "SHOWDEX_CONFIG"
	EnvDBPath     = "SHOWDEX_DB"
	EnvDexPath    = "SHOWDEX_DEX"

	// Route fragments
	RouteAPIPrefix   = "/api"
	RouteSimulations = "/simulations"
	RouteSimByID     = "/simulations/:battleId"
	RouteSimActions  = "/simulations/:battleId/actions"
	RouteSimExecute  = "/simulations/:battleId/execute"
	RouteSimAdvance  = "/simulations/:battleId/advance"
	RouteSimDecision = "/simulations/:battleId/decisions/:index"
	RouteSimStream   = "/simulations/:battleId/stream"
	RouteMoves       = "/moves"
	RouteVersion     = "/version"

	// JSON keys
	JSONKeyError    = "error"
	JSONKeyBattleID = "battle_id"
	JSONKeyMessage  = "message"

	// API error strings
	ErrInvalidRequest      = "invalid request payload"
	ErrInvalidBattleID     = "invalid battle id"
	ErrSessionNotFound     = "simulation session not found"
	ErrInvalidSide         = "unknown side key"
	ErrActionsIncomplete   = "both actions must be selected first"
	ErrDecisionsPending    = "resolve pending decisions before advancing"
	ErrInvalidTransition   = "operation not allowed in current state"
	ErrDecisionOutOfRange  = "no pending decision at that index"
	ErrFailedStoreSummary  = "failed to store simulation summary"
	ErrFailedListMoves     = "failed to list moves"
	ErrMoveNotFound        = "move not found"

	// Log field names
	LogFieldBattleID = "battle_id"
	LogFieldAddr     = "addr"
)
