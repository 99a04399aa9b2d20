package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(requesterID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	args := m.Called(requesterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) GetByID(commentID int64) (*dto.CommentResponse, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Update(commentID int64, requesterID, content string) (*dto.CommentResponse, error) {
	args := m.Called(commentID, requesterID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Delete(commentID int64, requesterID string) error {
	args := m.Called(commentID, requesterID)
	return args.Error(0)
}

func (m *MockCommentService) ListByPost(postID int64, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	args := m.Called(postID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.CommentResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) List(filters map[string]string, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	args := m.Called(filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.CommentResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Like(commentID int64, requesterID string) (bool, error) {
	args := m.Called(commentID, requesterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentService) Unlike(commentID int64, requesterID string) error {
	args := m.Called(commentID, requesterID)
	return args.Error(0)
}

func (m *MockCommentService) Collect(commentID int64, requesterID string) (bool, error) {
	args := m.Called(commentID, requesterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentService) Uncollect(commentID int64, requesterID string) error {
	args := m.Called(commentID, requesterID)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware in tests.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func TestCommentCreate_Success(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.POST("/comments", asUser("writer"), h.Create)

	req := dto.CreateCommentRequest{Content: "hello", PostID: 1}
	mockService.On("Create", "writer", req).Return(&dto.CommentResponse{
		ID: 10, Content: "hello", PostID: 1,
	}, nil)

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest("POST", "/comments", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Status string              `json:"status"`
		Data   dto.CommentResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, int64(10), response.Data.ID)

	mockService.AssertExpectations(t)
}

// Domain failures keep HTTP 200 and report through the envelope.
func TestCommentCreate_ValidationFailureEnvelope(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.POST("/comments", asUser("writer"), h.Create)

	req := dto.CreateCommentRequest{Content: "x", PostID: 99}
	mockService.On("Create", "writer", req).Return(nil, service.ErrNotFound)

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest("POST", "/comments", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
}

func TestCommentDelete_ForbiddenEnvelope(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.DELETE("/comments/:id", asUser("stranger"), h.Delete)

	mockService.On("Delete", int64(10), "stranger").Return(service.ErrForbidden)

	httpReq, _ := http.NewRequest("DELETE", "/comments/10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
	assert.Equal(t, service.ErrForbidden.Error(), response["message"])
}

func TestCommentDelete_BadID(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.DELETE("/comments/:id", asUser("writer"), h.Delete)

	httpReq, _ := http.NewRequest("DELETE", "/comments/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCommentListByPost_Envelope(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.GET("/posts/:id/comments", h.ListByPost)

	mockService.On("ListByPost", int64(1), 1, 10).Return([]dto.CommentResponse{
		{ID: 10, Content: "first"},
		{ID: 11, Content: "second"},
	}, int64(25), nil)

	httpReq, _ := http.NewRequest("GET", "/posts/1/comments", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, int64(25), response.Count)
	assert.NotNil(t, response.Next)
	assert.Nil(t, response.Previous)
}

func TestCommentLike_Repeat(t *testing.T) {
	mockService := new(MockCommentService)
	h := NewCommentHandler(mockService)
	router := setupRouter()
	router.POST("/comments/:id/like", asUser("fan"), h.Like)

	mockService.On("Like", int64(10), "fan").Return(false, nil)

	httpReq, _ := http.NewRequest("POST", "/comments/10/like", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, "already liked", response["message"])
}
