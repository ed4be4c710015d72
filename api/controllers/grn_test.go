package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	grnsvc "github.com/brewopshq/brewhaus-backend/internal/grn"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
)

type testGRNService struct {
	createFn  func(ctx context.Context, input grnsvc.CreateGRNInput) (*grnsvc.GRNView, error)
	updateFn  func(ctx context.Context, id uuid.UUID, input grnsvc.UpdateGRNInput) (*grnsvc.GRNView, error)
	viewFn    func(ctx context.Context, id uuid.UUID) (*grnsvc.GRNView, error)
	viewAllFn func(ctx context.Context) ([]grnsvc.GRNView, error)
}

func (s *testGRNService) Create(ctx context.Context, input grnsvc.CreateGRNInput) (*grnsvc.GRNView, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return nil, nil
}

func (s *testGRNService) Update(ctx context.Context, id uuid.UUID, input grnsvc.UpdateGRNInput) (*grnsvc.GRNView, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return nil, nil
}

func (s *testGRNService) View(ctx context.Context, id uuid.UUID) (*grnsvc.GRNView, error) {
	if s.viewFn != nil {
		return s.viewFn(ctx, id)
	}
	return nil, nil
}

func (s *testGRNService) ViewAll(ctx context.Context) ([]grnsvc.GRNView, error) {
	if s.viewAllFn != nil {
		return s.viewAllFn(ctx)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withRouteParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAddGRNSuccess(t *testing.T) {
	id := uuid.New()
	svc := &testGRNService{
		createFn: func(ctx context.Context, input grnsvc.CreateGRNInput) (*grnsvc.GRNView, error) {
			if len(input.Ingredients) != 1 || input.Ingredients[0].Name != "Hops" {
				t.Fatalf("unexpected input %+v", input)
			}
			return &grnsvc.GRNView{
				ID:          id,
				IssuedDate:  time.Now().UTC(),
				Ingredients: []grnsvc.LineView{{Name: "Hops", Quantity: 60}},
			}, nil
		},
	}

	body := `{"ingredients":[{"name":"Hops","quantity":60}]}`
	req := httptest.NewRequest(http.MethodPost, "/grn/add", strings.NewReader(body))
	resp := httptest.NewRecorder()

	AddGRN(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data grnsvc.GRNView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if envelope.Data.ID != id {
		t.Fatalf("unexpected id %s", envelope.Data.ID)
	}
}

func TestAddGRNRejectsMissingIngredients(t *testing.T) {
	svc := &testGRNService{
		createFn: func(ctx context.Context, input grnsvc.CreateGRNInput) (*grnsvc.GRNView, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/grn/add", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()

	AddGRN(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestUpdateGRNNotFound(t *testing.T) {
	id := uuid.New()
	svc := &testGRNService{
		updateFn: func(ctx context.Context, got uuid.UUID, input grnsvc.UpdateGRNInput) (*grnsvc.GRNView, error) {
			if got != id {
				t.Fatalf("unexpected id %s", got)
			}
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "GRN not found")
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/grn/update/"+id.String(), strings.NewReader(`{}`))
	req = withRouteParam(req, "grn_id", id.String())
	resp := httptest.NewRecorder()

	UpdateGRN(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if envelope.Error.Message != "GRN not found" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestViewGRNRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/grn/view/nope", nil)
	req = withRouteParam(req, "grn_id", "nope")
	resp := httptest.NewRecorder()

	ViewGRN(&testGRNService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
