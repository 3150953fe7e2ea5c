package handler

import (
	"net/http"
	"testing"

	"fpa-order-api/internal/constant"
)

func TestHTTPStatusOf(t *testing.T) {
	cases := []struct {
		name string
		code int
		want int
	}{
		{"success", constant.CodeSuccess, http.StatusOK},
		{"duplicate order", constant.CodeOrderAlreadyExist, http.StatusConflict},
		{"lock conflict", constant.CodeLockConflict, http.StatusConflict},
		{"order not found", constant.CodeOrderNotFound, http.StatusNotFound},
		{"amount invalid", constant.CodeOrderAmountInvalid, http.StatusBadRequest},
		{"params format", constant.CodeParamsFormatError, http.StatusBadRequest},
		{"params range", constant.CodeParamsRangeError, http.StatusBadRequest},
		{"pool empty", constant.CodeChannelPoolEmpty, http.StatusBadRequest},
		{"pool exhausted", constant.CodeChannelExhausted, http.StatusBadGateway},
		{"bad signature", constant.CodeSignatureError, http.StatusUnauthorized},
		{"merchant not found", constant.CodeMerchantNotFound, http.StatusUnauthorized},
		{"merchant disabled", constant.CodeMerchantDisabled, http.StatusForbidden},
		{"ip rejected", constant.CodeIPNotWhitelisted, http.StatusForbidden},
		{"stale timestamp", constant.CodeTimestampExpired, http.StatusForbidden},
		{"upstream error", constant.CodeUpstreamError, http.StatusBadGateway},
		{"upstream timeout", constant.CodeUpstreamTimeout, http.StatusBadGateway},
		{"system error", constant.CodeSystemError, http.StatusInternalServerError},
		{"database error", constant.CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := httpStatusOf(tc.code); got != tc.want {
				t.Fatalf("httpStatusOf(%d) = %d, want %d", tc.code, got, tc.want)
			}
		})
	}
}
