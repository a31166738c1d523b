package share

import (
	"context"
	"strings"

	"backend-trailpace/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateInvite mints a short share code for the route.
func (s *Service) CreateInvite(ctx context.Context, routeID, createdBy string) (Invite, error) {
	invite := Invite{
		ID:        uuid.NewString(),
		RouteID:   routeID,
		Code:      strings.SplitN(uuid.NewString(), "-", 2)[0],
		CreatedBy: createdBy,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO route_invites (id, route_id, code, created_by)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, invite.ID, invite.RouteID, invite.Code, invite.CreatedBy)
	if err := row.Scan(&invite.CreatedAt); err != nil {
		return Invite{}, err
	}
	return invite, nil
}

// Accept redeems an invite code and grants the user access to the route.
func (s *Service) Accept(ctx context.Context, code, userID string) (string, error) {
	var routeID string
	if err := s.db.QueryRow(ctx, `
		SELECT route_id FROM route_invites WHERE code=$1
	`, code).Scan(&routeID); err != nil {
		return "", err
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO route_shares (route_id, user_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, routeID, userID)
	if err != nil {
		return "", err
	}
	return routeID, nil
}

func (s *Service) SharedRoutes(ctx context.Context, userID string) ([]SharedRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.name, s.shared_at
		FROM route_shares s
		JOIN routes r ON r.id = s.route_id
		WHERE s.user_id=$1
		ORDER BY s.shared_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []SharedRoute
	for rows.Next() {
		var r SharedRoute
		if err := rows.Scan(&r.RouteID, &r.Name, &r.SharedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) Members(ctx context.Context, routeID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT route_id, user_id, shared_at
		FROM route_shares WHERE route_id=$1
		ORDER BY shared_at
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.RouteID, &m.UserID, &m.SharedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}
