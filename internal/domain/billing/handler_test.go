package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, principal auth.Principal, params map[string]string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(auth.WithPrincipal(req.Context(), principal))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return rec, h(c)
}

func assertStatusError(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	if he.Code != want {
		t.Errorf("expected status %d, got %d (%v)", want, he.Code, he.Message)
	}
}

var staffPrincipal = auth.Principal{ID: uuid.New(), Role: auth.RoleReceptionist}

func TestIssueInvoiceHandler(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	body := fmt.Sprintf(`{"appointment_id":%q,"patient_id":%q,"amount_cents":7500}`, uuid.New(), uuid.New())
	rec, err := doRequest(t, h.IssueInvoice, http.MethodPost, "/invoices", body, staffPrincipal, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var inv Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if inv.Status != StatusPending || inv.AmountCents != 7500 {
		t.Errorf("unexpected invoice: %+v", inv)
	}
}

func TestIssueInvoiceHandler_Validation(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	body := fmt.Sprintf(`{"patient_id":%q,"amount_cents":7500}`, uuid.New())
	_, err := doRequest(t, h.IssueInvoice, http.MethodPost, "/invoices", body, staffPrincipal, nil)
	assertStatusError(t, err, http.StatusBadRequest)
}

func TestPayInvoiceHandler(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	inv, err := svc.Issue(context.Background(), IssueRequest{
		AppointmentID: uuid.New(),
		PatientID:     uuid.New(),
		AmountCents:   7500,
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec, err := doRequest(t, h.PayInvoice, http.MethodPost, "/invoices/"+inv.ID.String()+"/pay", "",
		staffPrincipal, map[string]string{"id": inv.ID.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var paid Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &paid); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Errorf("expected paid, got %s", paid.Status)
	}
}

func TestPayInvoiceHandler_AlreadyPaid(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	inv, err := svc.Issue(context.Background(), IssueRequest{
		AppointmentID: uuid.New(),
		PatientID:     uuid.New(),
		AmountCents:   7500,
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Pay(context.Background(), inv.ID); err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	_, err = doRequest(t, h.PayInvoice, http.MethodPost, "/invoices/"+inv.ID.String()+"/pay", "",
		staffPrincipal, map[string]string{"id": inv.ID.String()})
	assertStatusError(t, err, http.StatusConflict)
}

func TestGetInvoiceHandler_OwnershipHidden(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	patientID := uuid.New()

	inv, err := svc.Issue(context.Background(), IssueRequest{
		AppointmentID: uuid.New(),
		PatientID:     patientID,
		AmountCents:   7500,
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec, err := doRequest(t, h.GetInvoice, http.MethodGet, "/invoices/"+inv.ID.String(), "",
		auth.Principal{ID: patientID, Role: auth.RolePatient}, map[string]string{"id": inv.ID.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	_, err = doRequest(t, h.GetInvoice, http.MethodGet, "/invoices/"+inv.ID.String(), "",
		auth.Principal{ID: uuid.New(), Role: auth.RolePatient}, map[string]string{"id": inv.ID.String()})
	assertStatusError(t, err, http.StatusNotFound)
}

func TestListInvoicesHandler_PatientScoped(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	patientID := uuid.New()

	if _, err := svc.Issue(context.Background(), IssueRequest{
		AppointmentID: uuid.New(),
		PatientID:     patientID,
		AmountCents:   7500,
	}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// The query names another patient; the authenticated patient wins.
	rec, err := doRequest(t, h.ListInvoices, http.MethodGet, "/invoices?patient_id="+uuid.New().String(), "",
		auth.Principal{ID: patientID, Role: auth.RolePatient}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data  []*Invoice `json:"data"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected 1 invoice, got total=%d len=%d", resp.Total, len(resp.Data))
	}
	if resp.Data[0].PatientID != patientID {
		t.Errorf("expected own invoice, got patient %s", resp.Data[0].PatientID)
	}
}

func TestListInvoicesHandler_StaffNeedsFilter(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	_, err := doRequest(t, h.ListInvoices, http.MethodGet, "/invoices", "", staffPrincipal, nil)
	assertStatusError(t, err, http.StatusBadRequest)
}
