package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpeechLink/models"
	"SpeechLink/repositories/inmem"
)

func TestCreateChildSeedsMembership(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	service := NewChildService(childRepo)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}

	child, err := service.CreateChild(ctx, parent, ChildInput{Name: "Timur"})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, child.PrimaryParentID)
	assert.Equal(t, []string{parent.ID}, child.ParentIDs)
	assert.Empty(t, child.SpecialistIDs)
	assert.NotEmpty(t, child.ID)
}

func TestCreateChildRejectsSpecialists(t *testing.T) {
	store := inmem.NewStore()
	service := NewChildService(inmem.NewChildRepository(store))

	specialist := models.User{ID: "spec-1", UserType: models.UserTypeSpecialist}
	_, err := service.CreateChild(context.Background(), specialist, ChildInput{Name: "Timur"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestReadChildRequiresConnection(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	service := NewChildService(childRepo)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", UserType: models.UserTypeParent}
	child, err := service.CreateChild(ctx, parent, ChildInput{Name: "Timur"})
	require.NoError(t, err)

	stranger := models.User{ID: "spec-9", UserType: models.UserTypeSpecialist}
	_, err = service.ReadChild(ctx, stranger, child.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := service.ReadChild(ctx, parent, child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, got.ID)
}

func TestUpdateChildPrimaryParentOnly(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	service := NewChildService(childRepo)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", UserType: models.UserTypeParent}
	child, err := service.CreateChild(ctx, parent, ChildInput{Name: "Timur"})
	require.NoError(t, err)

	// A co-parent can see the profile but not edit it.
	child.ParentIDs = append(child.ParentIDs, "parent-2")
	require.NoError(t, childRepo.Save(ctx, child))

	coParent := models.User{ID: "parent-2", UserType: models.UserTypeParent}
	_, err = service.UpdateChild(ctx, coParent, child.ID, ChildInput{Name: "Timur A."})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := service.UpdateChild(ctx, parent, child.ID, ChildInput{Name: "Timur A."})
	require.NoError(t, err)
	assert.Equal(t, "Timur A.", updated.Name)
}

func TestDeleteChildLeavesNoAccess(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	service := NewChildService(childRepo)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", UserType: models.UserTypeParent}
	child, err := service.CreateChild(ctx, parent, ChildInput{Name: "Timur"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteChild(ctx, parent, child.ID))

	children, err := service.ListChildren(ctx, parent)
	require.NoError(t, err)
	assert.Empty(t, children)
}
