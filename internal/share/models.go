package share

import "time"

type Invite struct {
	ID        string    `json:"id"`
	RouteID   string    `json:"route_id"`
	Code      string    `json:"code"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Member struct {
	RouteID  string    `json:"route_id"`
	UserID   string    `json:"user_id"`
	SharedAt time.Time `json:"shared_at"`
}

type SharedRoute struct {
	RouteID  string    `json:"route_id"`
	Name     string    `json:"name"`
	SharedAt time.Time `json:"shared_at"`
}
