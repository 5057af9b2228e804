package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type clockedRequest struct {
	Time string `json:"time" binding:"required,timeofday"`
}

func bindClockedRequest(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req clockedRequest
	return c.ShouldBindJSON(&req)
}

func TestTimeOfDayValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid morning", `{"time":"09:30"}`, false},
		{"valid midnight", `{"time":"00:00"}`, false},
		{"valid end of day", `{"time":"23:59"}`, false},
		{"valid with seconds", `{"time":"12:30:45"}`, false},
		{"hour out of range", `{"time":"24:00"}`, true},
		{"minute out of range", `{"time":"12:60"}`, true},
		{"second out of range", `{"time":"12:30:60"}`, true},
		{"missing minutes", `{"time":"12"}`, true},
		{"empty", `{"time":""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindClockedRequest(t, tt.body)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
