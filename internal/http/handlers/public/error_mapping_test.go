package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nivran-shop/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

func recordQuoteError(t *testing.T, err error, fallback *service.Quote) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/public/quote", nil)

	respondQuoteError(c, err, fallback)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return w.Code, body
}

func TestQuoteErrorModeValidationIsBadRequest(t *testing.T) {
	status, body := recordQuoteError(t, service.ErrPromoCodeRequired, &service.Quote{})
	if status != http.StatusBadRequest {
		t.Fatalf("missing code want 400 got %d", status)
	}
	if body["ok"] != false || body["reason"] != service.ReasonPromoInvalid {
		t.Fatalf("unexpected body %+v", body)
	}
	if _, ok := body["quote"]; ok {
		t.Fatalf("bad request should not embed a fallback quote: %+v", body)
	}

	status, body = recordQuoteError(t, service.ErrDiscountModeUnsupported, &service.Quote{})
	if status != http.StatusBadRequest {
		t.Fatalf("mode mismatch want 400 got %d", status)
	}
	if body["reason"] != service.ReasonDiscountModeUnsupported {
		t.Fatalf("unexpected reason %v", body["reason"])
	}
}

func TestQuoteErrorPromotionOutcomeIsSoftFail(t *testing.T) {
	status, body := recordQuoteError(t, service.ErrPromoExpired, &service.Quote{})
	if status != http.StatusOK {
		t.Fatalf("promotion outcome want 200 got %d", status)
	}
	if body["ok"] != false || body["reason"] != service.ReasonPromoExpired {
		t.Fatalf("unexpected body %+v", body)
	}
	if _, ok := body["quote"]; !ok {
		t.Fatalf("soft fail should embed the zero-discount quote: %+v", body)
	}
}

func TestQuoteErrorCatalogMismatchIsBadRequest(t *testing.T) {
	status, body := recordQuoteError(t, service.ErrProductInvalid, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("catalog mismatch want 400 got %d", status)
	}
	if body["reason"] != service.ReasonInvalidProduct {
		t.Fatalf("unexpected reason %v", body["reason"])
	}
}
