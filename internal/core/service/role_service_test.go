package service

import (
	"context"
	"testing"

	"github.com/rentdesk/property-system/internal/core/domain"
)

func TestRoleService_Delete_RefusesWhenInUse(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.RoleAdmin, domain.RoleLandlord)
	seedUser(t, users, "alice", "alice@example.com", "pass", 1)

	svc := NewRoleService(roles, users)

	if err := svc.Delete(context.Background(), 1); err != domain.ErrRoleInUse {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}

	// Role 2 has no users and deletes cleanly.
	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete unused role: %v", err)
	}
}

func TestRoleService_Create_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.RoleAdmin)

	svc := NewRoleService(roles, users)

	if _, err := svc.Create(context.Background(), domain.RoleAdmin); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
}

func TestRoleService_Update_RejectsNameCollision(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.RoleAdmin, domain.RoleLandlord)

	svc := NewRoleService(roles, users)

	if _, err := svc.Update(context.Background(), 2, domain.RoleAdmin); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}

	// Renaming a role to its own name is fine.
	role, err := svc.Update(context.Background(), 2, domain.RoleLandlord)
	if err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if role.Name != domain.RoleLandlord {
		t.Fatalf("unexpected name: %s", role.Name)
	}
}
