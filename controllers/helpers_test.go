package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ve := &utils.ValidationError{}
	ve.Add("age", "age is required")

	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", ve, http.StatusBadRequest, `{"error":"validation failed","fields":{"age":["age is required"]}}`},
		{"computation", fmt.Errorf("%w: height must be positive", utils.ErrComputation), http.StatusUnprocessableEntity, ""},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), "height must be positive")
			}
		})
	}
}
