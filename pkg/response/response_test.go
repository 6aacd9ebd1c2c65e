package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestError_FlatBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Unauthorized(c, "Invalid token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if body["error"] != "Invalid token" {
		t.Errorf("expected error=Invalid token, got %v", body["error"])
	}
	if len(body) != 1 {
		t.Errorf("错误响应只应包含 error 字段，实际: %v", body)
	}
}

func TestInternalError_DefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InternalError(c, "")

	var body ErrorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusInternalServerError || body.Error != "Internal server error" {
		t.Errorf("unexpected response %d %+v", w.Code, body)
	}
}

func TestOKPage_TotalPages(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKPage(c, []int{1, 2}, 21, 1, 10)

	var body PageData
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", body.Pagination.TotalPages)
	}
}
