package swipe_test

import (
	"net/http"
	"testing"

	"gotest.tools/assert"

	"github.com/mdating/mdating-backend/internal/entity"
	helper_test "github.com/mdating/mdating-backend/test/helper"
)

func TestSignUpAndSignIn(t *testing.T) {
	user := helper_test.SignUpUser(t, "Ida", "ida.auth@example.com", "password123", entity.SexFemale)
	assert.Equal(t, user.Email, "ida.auth@example.com")
	assert.Assert(t, user.ID != "")

	token := helper_test.SignInUser(t, "ida.auth@example.com", "password123")
	assert.Assert(t, token != "")
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	helper_test.SignUpUser(t, "Jon", "jon.dup@example.com", "password123", entity.SexMale)

	status, _ := helper_test.PostJSON(t, "/v1/auth/sign-up", "", entity.SignUpRequest{
		Name:     "Jon Again",
		Email:    "jon.dup@example.com",
		Password: "password456",
		Sex:      entity.SexMale,
	})
	assert.Equal(t, status, http.StatusConflict)
}

func TestSignInWrongPassword(t *testing.T) {
	helper_test.SignUpUser(t, "Kim", "kim.wrong@example.com", "password123", entity.SexFemale)

	status, _ := helper_test.PostJSON(t, "/v1/auth/sign-in", "", entity.SignInRequest{
		Email:    "kim.wrong@example.com",
		Password: "password999",
	})
	assert.Equal(t, status, http.StatusUnauthorized)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	status, _ := helper_test.PostJSON(t, "/v1/swipe", "", entity.SwipeRequest{
		SwipedUserID: "11111111-2222-4333-8444-555555555555",
		SwipeType:    entity.SwipeLike,
	})
	assert.Equal(t, status, http.StatusUnauthorized)
}
