package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	BrideName string `json:"brideName,omitempty"`
	GroomName string `json:"groomName,omitempty"`
	// Countdown nil si el usuario aún no configuró la fecha de la boda.
	Countdown *CountdownResponse `json:"countdown"`
	Todos     TodoStatsResponse  `json:"todos"`
	// Progress porcentaje de tareas completadas (0-100).
	Progress int `json:"progress"`
}
