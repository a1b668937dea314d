package auth

import (
	"net/http"
	"net/http/httptest"

	internal "github.com/frahmantamala/chat-management/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Mock auth service for middleware testing
type mockAuthService struct {
	claims      *Claims
	user        *User
	validateErr error
	userErr     error
}

func (m *mockAuthService) Authenticate(dto LoginDTO) (AuthTokens, error) {
	return AuthTokens{}, nil
}

func (m *mockAuthService) RefreshTokens(refreshToken string) (AuthTokens, error) {
	return AuthTokens{}, nil
}

func (m *mockAuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockAuthService) GetUserWithAccess(userID int64) (*User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.user, nil
}

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		mockSvc *mockAuthService
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		mockSvc = &mockAuthService{
			claims: &Claims{UserID: "7", Email: "mod@example.com"},
			user: &User{
				ID:          7,
				Email:       "mod@example.com",
				Name:        "Mod",
				ChatColor:   "#10b981",
				Roles:       []string{RoleModerator},
				Permissions: []string{PermissionViewChat, PermissionSendChatMessage},
			},
		}
		handler = NewHandler(mockSvc)
	})

	ginkgo.Context("when the bearer token is valid", func() {
		ginkgo.It("should stamp the caller and their id into the request context", func() {
			// Given
			var gotUser *User
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserFromContext(r.Context())
				gotUserID = internal.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/messages", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()

			// When
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(gotUser).ToNot(gomega.BeNil())
			gomega.Expect(gotUser.ID).To(gomega.Equal(int64(7)))
			gomega.Expect(gotUser.ChatColor).To(gomega.Equal("#10b981"))
			gomega.Expect(gotUserID).To(gomega.Equal("7"))
		})
	})

	ginkgo.Context("when the authorization header is missing", func() {
		ginkgo.It("should reject with 401 without calling the next handler", func() {
			// Given
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/messages", nil)
			rec := httptest.NewRecorder()

			// When
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("when token validation fails", func() {
		ginkgo.It("should reject with 401", func() {
			// Given
			mockSvc.validateErr = ErrInvalidToken
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			req := httptest.NewRequest(http.MethodGet, "/messages", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()

			// When
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
