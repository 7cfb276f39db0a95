package state

import (
	"context"
	"testing"

	"github.com/x3alone/01blog/internal/models"
)

func seedUsers(t *testing.T, env *testEnv) *UserList {
	t.Helper()
	env.backend.users = []models.User{
		{ID: 1, Username: "root", Role: models.RoleAdmin},
		{ID: 2, Username: "mod", Role: models.RoleAdmin},
		{ID: 3, Username: "alice", Role: models.RoleUser},
		{ID: 4, Username: "bob", Role: models.RoleUser, Banned: true},
	}
	list := NewUserList(env.coord, env.client, env.session)
	if err := list.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return list
}

func TestToggleRole_PromoteOptimistic(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)

	if !list.ToggleRole(context.Background(), 3) {
		t.Fatal("ToggleRole rejected")
	}
	u, _ := list.Get(3)
	if u.Role != models.RoleAdmin {
		t.Error("role change must be visible before the confirmation settles")
	}

	env.coord.Wait()
	if n := env.backend.callCount("PUT /api/users/{id}/promote"); n != 1 {
		t.Errorf("promote requests = %d; want 1", n)
	}
}

func TestToggleRole_RevertOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)
	env.backend.failWith("PUT /api/users/{id}/promote", 500)

	if !list.ToggleRole(context.Background(), 3) {
		t.Fatal("ToggleRole rejected")
	}
	env.coord.Wait()

	u, _ := list.Get(3)
	if u.Role != models.RoleUser {
		t.Errorf("role = %v after failed confirmation; want the original USER", u.Role)
	}
	if env.toasts.errors() != 1 {
		t.Errorf("error toasts = %d; want 1", env.toasts.errors())
	}
}

func TestToggleRole_RegularAdminCannotDemotePeer(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)

	if list.ToggleRole(context.Background(), 1) {
		t.Error("acting on the super admin must be rejected")
	}
	env.coord.Wait()
	if n := env.backend.callCount("PUT /api/users/{id}/demote"); n != 0 {
		t.Errorf("demote requests = %d; want 0, rejection happens before the network", n)
	}

	u, _ := list.Get(1)
	if u.Role != models.RoleAdmin {
		t.Error("rejected toggle must not touch the local record")
	}
}

func TestToggleRole_SuperAdminDemotesPeer(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 1, "root", models.RoleAdmin)
	list := seedUsers(t, env)

	if !list.ToggleRole(context.Background(), 2) {
		t.Fatal("the super admin must be allowed to demote another admin")
	}
	env.coord.Wait()

	u, _ := list.Get(2)
	if u.Role != models.RoleUser {
		t.Errorf("role = %v; want USER", u.Role)
	}
	if n := env.backend.callCount("PUT /api/users/{id}/demote"); n != 1 {
		t.Errorf("demote requests = %d; want 1", n)
	}
}

func TestToggleRole_NonAdminActor(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 3, "alice", models.RoleUser)
	list := seedUsers(t, env)

	if list.ToggleRole(context.Background(), 4) {
		t.Error("a regular user must not toggle roles")
	}
}

func TestToggleBan_OptimisticFlip(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)

	if !list.ToggleBan(context.Background(), 3) {
		t.Fatal("ToggleBan rejected")
	}
	u, _ := list.Get(3)
	if !u.Banned {
		t.Error("ban must be visible immediately")
	}
	env.coord.Wait()
	if n := env.backend.callCount("PUT /api/users/{id}/ban"); n != 1 {
		t.Errorf("ban requests = %d; want 1", n)
	}
}

func TestToggleBan_RevertOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)
	env.backend.failWith("PUT /api/users/{id}/ban", 500)

	if !list.ToggleBan(context.Background(), 4) {
		t.Fatal("ToggleBan rejected")
	}
	env.coord.Wait()

	u, _ := list.Get(4)
	if !u.Banned {
		t.Error("failed unban must restore the captured banned flag")
	}
}

func TestToggleBan_SelfRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, 2, "mod", models.RoleAdmin)
	list := seedUsers(t, env)

	if list.ToggleBan(context.Background(), 2) {
		t.Error("moderating yourself must be rejected")
	}
	if n := env.backend.callCount("PUT /api/users/{id}/ban"); n != 0 {
		t.Errorf("ban requests = %d; want 0", n)
	}
}
