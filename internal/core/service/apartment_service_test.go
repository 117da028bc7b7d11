package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

type stubApartmentRepo struct {
	byID   map[int]*domain.Apartment
	nextID int
}

func newStubApartmentRepo() *stubApartmentRepo {
	return &stubApartmentRepo{byID: make(map[int]*domain.Apartment), nextID: 1}
}

func (r *stubApartmentRepo) Create(_ context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	clone := *a
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubApartmentRepo) FindByID(_ context.Context, id int) (*domain.Apartment, error) {
	if a, ok := r.byID[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrApartmentNotFound
}

func (r *stubApartmentRepo) List(_ context.Context, skip, limit int) ([]*domain.Apartment, error) {
	var out []*domain.Apartment
	for i := 1; i < r.nextID; i++ {
		if a, ok := r.byID[i]; ok {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApartmentRepo) Update(_ context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return nil, domain.ErrApartmentNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubApartmentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrApartmentNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestApartmentService_Create_LandlordOnly(t *testing.T) {
	repo := newStubApartmentRepo()
	users := newStubUserRepo()
	landlord := seedUser(t, users, "lana", "lana@example.com", "pass", 2)

	svc := NewApartmentService(repo, users, zerolog.Nop())

	input := ports.CreateApartmentInput{Name: "Loft 4B", Address: "12 Main St", RentPrice: 900}

	if _, err := svc.Create(context.Background(), ports.Actor{UserID: landlord.ID, RoleName: domain.RoleTenant}, input); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for tenant, got %v", err)
	}

	created, err := svc.Create(context.Background(), ports.Actor{UserID: landlord.ID, RoleName: domain.RoleLandlord}, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.LandlordID != landlord.ID {
		t.Fatalf("owner not taken from actor: %d", created.LandlordID)
	}
	if created.Status != domain.ApartmentAvailable {
		t.Fatalf("expected default status available, got %s", created.Status)
	}
	if created.Landlord == nil || created.Landlord.Username != "lana" {
		t.Fatalf("landlord not embedded: %+v", created.Landlord)
	}
}

func TestApartmentService_Update_OwnershipEnforced(t *testing.T) {
	repo := newStubApartmentRepo()
	users := newStubUserRepo()
	owner := seedUser(t, users, "lana", "lana@example.com", "pass", 2)
	other := seedUser(t, users, "luke", "luke@example.com", "pass", 2)

	svc := NewApartmentService(repo, users, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.Actor{UserID: owner.ID, RoleName: domain.RoleLandlord},
		ports.CreateApartmentInput{Name: "Loft 4B", Address: "12 Main St", RentPrice: 900})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := ports.CreateApartmentInput{Name: "Loft 4B renovated", Address: "12 Main St", RentPrice: 1100}

	if _, err := svc.Update(context.Background(), ports.Actor{UserID: other.ID, RoleName: domain.RoleLandlord}, created.ID, input); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Admin overrides ownership.
	updated, err := svc.Update(context.Background(), ports.Actor{UserID: other.ID, RoleName: domain.RoleAdmin}, created.ID, input)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.RentPrice != 1100 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.LandlordID != owner.ID {
		t.Fatalf("ownership must not change on update")
	}
}

func TestApartmentService_Delete_NotFound(t *testing.T) {
	repo := newStubApartmentRepo()
	users := newStubUserRepo()

	svc := NewApartmentService(repo, users, zerolog.Nop())

	if err := svc.Delete(context.Background(), ports.Actor{UserID: 1, RoleName: domain.RoleAdmin}, 7); err != domain.ErrApartmentNotFound {
		t.Fatalf("expected ErrApartmentNotFound, got %v", err)
	}
}
