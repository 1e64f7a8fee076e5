package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicateEmail, http.StatusConflict},
		{CodeAlreadyVotedToday, http.StatusTooManyRequests},
		{CodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{CodeInternalError, http.StatusInternalServerError},
		{"TEMPERATURE_OUT_OF_RANGE", http.StatusBadRequest},
		{"SOME_DOMAIN_RULE", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, GetHTTPStatus(tc.code))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 41)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMeta(1, 0, 10)
	assert.Equal(t, 0, empty.TotalPages)
}
