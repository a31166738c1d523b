package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var dbErr = errors.New("db error")

func TestCreateInviteAndAccept(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO route_invites`).
		WithArgs(pgxmock.AnyArg(), "route-1", pgxmock.AnyArg(), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	invite, err := svc.CreateInvite(context.Background(), "route-1", "user-1")
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if invite.Code == "" || len(invite.Code) >= 36 {
		t.Fatalf("expected short code, got %q", invite.Code)
	}

	mock.ExpectQuery(`SELECT route_id FROM route_invites`).
		WithArgs(invite.Code).
		WillReturnRows(pgxmock.NewRows([]string{"route_id"}).AddRow("route-1"))
	mock.ExpectExec(`INSERT INTO route_shares`).
		WithArgs("route-1", "user-2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	routeID, err := svc.Accept(context.Background(), invite.Code, "user-2")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if routeID != "route-1" {
		t.Fatalf("unexpected route id: %s", routeID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcceptUnknownCode(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT route_id FROM route_invites`).
		WithArgs("nope").
		WillReturnError(dbErr)

	svc := NewService(mock)
	if _, err := svc.Accept(context.Background(), "nope", "user-2"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSharedRoutesAndMembers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT r.id, r.name, s.shared_at`).
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "shared_at"}).
			AddRow("route-1", "Hundred", time.Now()))

	svc := NewService(mock)
	routes, err := svc.SharedRoutes(context.Background(), "user-2")
	if err != nil || len(routes) != 1 {
		t.Fatalf("shared routes: %v", err)
	}
	if routes[0].Name != "Hundred" {
		t.Fatalf("unexpected route: %+v", routes[0])
	}

	mock.ExpectQuery(`SELECT route_id, user_id, shared_at`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"route_id", "user_id", "shared_at"}).
			AddRow("route-1", "user-2", time.Now()))

	members, err := svc.Members(context.Background(), "route-1")
	if err != nil || len(members) != 1 {
		t.Fatalf("members: %v", err)
	}
}
