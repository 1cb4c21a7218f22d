package dto

import "time"

// TeamResponse equipo con su plan y estado de suscripción (GET /api/teams/me).
type TeamResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Currency   string     `json:"currency,omitempty"`
	IsTrial    bool       `json:"is_trial"`
	ExpireDate *time.Time `json:"expire_date,omitempty"`
	Expired    bool       `json:"expired"`
	Plan       *PlanDTO   `json:"plan,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PlanDTO plan de suscripción.
type PlanDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FeatureKeys []string `json:"feature_keys"`
}
