package community

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct{}

func (stubProducts) Create(context.Context, *model.Product) error { return nil }
func (stubProducts) FindByID(_ context.Context, id int) (*model.Product, error) {
	if id == 1 {
		return &model.Product{ID: 1, Name: "Bowl"}, nil
	}
	return nil, nil
}
func (stubProducts) FindByFilter(context.Context, model.ProductFilter) ([]*model.Product, error) {
	return nil, nil
}
func (stubProducts) Update(context.Context, *model.Product) error { return nil }
func (stubProducts) Delete(context.Context, int) (bool, error)    { return false, nil }
func (stubProducts) Count(context.Context) (int, error)           { return 1, nil }

type memComments struct {
	rows map[int]*model.Comment
}

func (m *memComments) Create(_ context.Context, c *model.Comment) error {
	c.ID = len(m.rows) + 1
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memComments) FindByID(_ context.Context, id int) (*model.Comment, error) {
	if c, ok := m.rows[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memComments) FindByProductID(context.Context, int) ([]*model.Comment, error) { return nil, nil }
func (m *memComments) FindByUserID(context.Context, int) ([]*model.Comment, error)    { return nil, nil }
func (m *memComments) FindAll(context.Context) ([]*model.Comment, error)              { return nil, nil }

func (m *memComments) Update(_ context.Context, c *model.Comment) error {
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memComments) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	comments := service.NewCommentService(&memComments{rows: map[int]*model.Comment{}}, stubProducts{})
	h := NewCommunityHandler(comments, nil)

	r := gin.New()
	asUser := func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id == "2" {
			c.Set("user_id", 2)
		} else {
			c.Set("user_id", 1)
		}
	}
	r.GET("/comments/:id", h.GetComment)
	r.POST("/comments", asUser, h.CreateComment)
	r.PUT("/comments/:id", asUser, h.UpdateComment)
	r.DELETE("/comments/:id", asUser, h.DeleteComment)
	return r
}

func send(r http.Handler, method, path, body, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCommentFlowThroughHandlers(t *testing.T) {
	r := newRouter()

	w := send(r, http.MethodPost, "/comments", `{"product_id":1,"text":"Nice bowl"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = send(r, http.MethodPost, "/comments", `{"product_id":2,"text":"Ghost"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodPut, "/comments/1", `{"text":"Hijacked"}`, "2")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You can only modify your own comments")

	w = send(r, http.MethodDelete, "/comments/1", "", "2")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(r, http.MethodPut, "/comments/1", `{"text":""}`, "2")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = send(r, http.MethodPut, "/comments/1", `{"text":"  "}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodGet, "/comments/1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nice bowl")

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/comments/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/comments/1", "", "").Code)
}
