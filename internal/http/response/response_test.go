package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessWithMsgRespondsOK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/contact", func(c *gin.Context) {
		SuccessWithMsg(c, "Message received", gin.H{"id": 1})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status_code":0`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Message received") {
		t.Fatalf("message missing from body: %s", w.Body.String())
	}
}

func TestErrorFollowsBusinessCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[int]int{
		CodeBadRequest:      http.StatusBadRequest,
		CodeUnauthorized:    http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeNotFound:        http.StatusNotFound,
		CodeTooManyRequests: http.StatusTooManyRequests,
		CodeInternal:        http.StatusInternalServerError,
		99999:               http.StatusInternalServerError,
	}
	for code, wantStatus := range cases {
		r := gin.New()
		r.GET("/err", func(c *gin.Context) {
			Error(c, code, "boom")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))

		if w.Code != wantStatus {
			t.Fatalf("code %d: wire status want %d got %d", code, wantStatus, w.Code)
		}
	}
}
