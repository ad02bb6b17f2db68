package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpeechLink/models"
	"SpeechLink/repositories/inmem"
	"SpeechLink/services"
)

// asUser injects the claims the auth middleware would have set.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("uid", user.ID)
		c.Set("email", user.Email)
		c.Set("name", user.Name)
		c.Set("user_type", user.UserType)
		c.Next()
	}
}

type connectionTestEnv struct {
	store      *inmem.Store
	parent     models.User
	specialist models.User
	childID    string
}

func setupConnectionEnv(t *testing.T) *connectionTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := inmem.NewStore()
	userRepo := inmem.NewUserRepository(store)
	childRepo := inmem.NewChildRepository(store)
	connectionRepo := inmem.NewConnectionRepository(store)

	parent := models.User{ID: "parent-1", Name: "Aisha", Email: "aisha@example.com", UserType: models.UserTypeParent}
	specialist := models.User{ID: "spec-1", Name: "Dana Speech", Email: "slp@example.com", UserType: models.UserTypeSpecialist}
	require.NoError(t, userRepo.Save(ctx, parent))
	require.NoError(t, userRepo.Save(ctx, specialist))

	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
	})
	require.NoError(t, err)

	SetConnectionService(services.NewConnectionService(connectionRepo, childRepo, userRepo, nil))

	return &connectionTestEnv{store: store, parent: parent, specialist: specialist, childID: childID}
}

func routerFor(user models.User) *gin.Engine {
	r := gin.New()
	r.Use(asUser(user))
	r.POST("/connections/invitations", SendInvitation)
	r.GET("/connections/requests", PendingRequests)
	r.PUT("/connections/requests/:request_id/respond", RespondToInvitation)
	return r
}

func TestSendInvitationEndpoint(t *testing.T) {
	env := setupConnectionEnv(t)
	r := routerFor(env.parent)

	body, _ := json.Marshal(gin.H{
		"child_id":        env.childID,
		"recipient_email": env.specialist.Email,
		"recipient_name":  "Dana",
		"type":            models.ConnectionTypeSpecialist,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections/invitations", bytes.NewBuffer(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		RecipientHasAccount bool `json:"recipient_has_account"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.RecipientHasAccount)

	// A duplicate invite maps to 409.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/connections/invitations", bytes.NewBuffer(body))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendInvitationEndpointValidation(t *testing.T) {
	env := setupConnectionEnv(t)
	r := routerFor(env.parent)

	body, _ := json.Marshal(gin.H{"child_id": env.childID})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections/invitations", bytes.NewBuffer(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondToInvitationEndpoint(t *testing.T) {
	env := setupConnectionEnv(t)

	body, _ := json.Marshal(gin.H{
		"child_id":        env.childID,
		"recipient_email": env.specialist.Email,
		"recipient_name":  "Dana",
		"type":            models.ConnectionTypeSpecialist,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections/invitations", bytes.NewBuffer(body))
	routerFor(env.parent).ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// The specialist sees the pending request.
	specialistRouter := routerFor(env.specialist)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/connections/requests", nil)
	specialistRouter.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Data []models.ConnectionRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Data, 1)
	requestID := listing.Data[0].ID

	// Someone else cannot answer it.
	outsider := models.User{ID: "spec-2", Name: "Eve", Email: "eve@example.com", UserType: models.UserTypeSpecialist}
	decision, _ := json.Marshal(gin.H{"decision": models.StatusAccepted})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPut, "/connections/requests/"+requestID+"/respond", bytes.NewBuffer(decision))
	routerFor(outsider).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The addressed specialist can.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPut, "/connections/requests/"+requestID+"/respond", bytes.NewBuffer(decision))
	specialistRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Answering again hits the terminal-status guard.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPut, "/connections/requests/"+requestID+"/respond", bytes.NewBuffer(decision))
	specialistRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
