package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/chat-management/internal/auth"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Mock chat service for handler testing
type mockChatService struct {
	created   *Message
	createErr error
}

func (m *mockChatService) ListMessages(page, perPage int) (*MessagePageDTO, error) {
	return &MessagePageDTO{Messages: []*Message{}, Page: page, PerPage: perPage}, nil
}

func (m *mockChatService) CreateMessage(userID int64, dto CreateMessageDTO) (*Message, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *mockChatService) DeleteMessage(messageID int64) error {
	return nil
}

var _ = ginkgo.Describe("ChatHandler", func() {
	var (
		mockSvc *mockChatService
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		mockSvc = &mockChatService{
			created: &Message{ID: 1, UserID: 5, Body: "hello world"},
		}
		handler = NewHandler(mockSvc, 20, 100)
	})

	ginkgo.Describe("CreateMessage", func() {
		ginkgo.Context("when an authenticated user posts a message", func() {
			ginkgo.It("should return the message with the sender's name and chat color", func() {
				// Given
				caller := &auth.User{ID: 5, Name: "Alice", ChatColor: "#ef4444"}
				req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"body":"hello world"}`))
				req = req.WithContext(auth.ContextWithUser(req.Context(), caller))
				rec := httptest.NewRecorder()

				// When
				handler.CreateMessage(rec, req)

				// Then
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))

				var got Message
				gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(gomega.Succeed())
				gomega.Expect(got.User).ToNot(gomega.BeNil())
				gomega.Expect(got.User.ID).To(gomega.Equal(int64(5)))
				gomega.Expect(got.User.Name).To(gomega.Equal("Alice"))
				gomega.Expect(got.User.ChatColor).To(gomega.Equal("#ef4444"))
			})
		})

		ginkgo.Context("when no user is present in the context", func() {
			ginkgo.It("should reject with 401", func() {
				// Given
				req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"body":"hello"}`))
				rec := httptest.NewRecorder()

				// When
				handler.CreateMessage(rec, req)

				// Then
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			})
		})
	})
})
