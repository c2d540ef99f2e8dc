package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/drafts"
	"github.com/meridian/starchart/pkg/galaxy"
	"github.com/meridian/starchart/pkg/pipeline"
	"github.com/meridian/starchart/pkg/sector"
	"github.com/meridian/starchart/pkg/universe"
)

// stubGalaxy fakes the universe service.
type stubGalaxy struct {
	generated *galaxy.GenerationConfig
}

func (g *stubGalaxy) Generate(ctx context.Context, cfg galaxy.GenerationConfig) (*universe.GenerateResult, error) {
	g.generated = &cfg
	return &universe.GenerateResult{GalaxyID: uuid.New(), Name: cfg.Name, SectorCount: cfg.TotalSectors}, nil
}

func (g *stubGalaxy) Status(ctx context.Context) (*universe.Status, error) {
	return &universe.Status{Name: "Meridian Prime", SectorCount: 500}, nil
}

// stubSectors serves a fixed sector list for the pipeline.
type stubSectors struct{}

func (stubSectors) Sectors(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error) {
	return []sector.Sector{
		{SectorID: 1, Type: sector.TypeStandard, X: 0, Y: 0, Discovered: true},
		{SectorID: 2, Type: sector.TypeStandard, X: 30, Y: 40, Discovered: true},
	}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := drafts.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	s := &Server{
		Runner: pipeline.NewRunner(stubSectors{}, nil, nil, log.NewWithOptions(io.Discard, log.Options{})),
		Galaxy: &stubGalaxy{},
		Drafts: store,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestMapBuild(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/map/build", map[string]any{
		"galaxy_id": uuid.New(),
		"formats":   []string{"json"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body buildResponse
	decodeBody(t, resp, &body)
	if len(body.Graph.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(body.Graph.Nodes))
	}
	// The two stub sectors are 50 apart, inside the default threshold.
	if body.Stats.EdgeCount != 1 {
		t.Errorf("edge count = %d, want 1", body.Stats.EdgeCount)
	}
	if body.GraphHash == "" {
		t.Error("graph hash is empty")
	}
	if _, ok := body.Artifacts["json"]; !ok {
		t.Error("json artifact missing")
	}
}

func TestMapBuildRejectsMissingGalaxy(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/map/build", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorBody
	decodeBody(t, resp, &body)
	if body.Error.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", body.Error.Code)
	}
}

func TestMapFit(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/map/fit", map[string]any{
		"nodes": []map[string]any{
			{"id": 1, "x": 100, "y": 100},
			{"id": 2, "x": 500, "y": 300},
		},
		"viewport": map[string]any{
			"width": 600, "height": 400,
			"visible_fraction": 0.8,
			"scale_extent":     []float64{0.1, 8},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var tr struct {
		TranslateX float64 `json:"translate_x"`
		TranslateY float64 `json:"translate_y"`
		Scale      float64 `json:"scale"`
	}
	// bbox 400x200 in a 600x400 surface: scale = 0.8 / (400/600) = 1.2,
	// translate = surface center minus scaled bbox center.
	decodeBody(t, resp, &tr)
	if math.Abs(tr.Scale-1.2) > 1e-9 || math.Abs(tr.TranslateX+60) > 1e-9 || math.Abs(tr.TranslateY+40) > 1e-9 {
		t.Errorf("fit = %+v, want scale 1.2, translate (-60, -40)", tr)
	}
}

func TestMapFitRejectsBadViewport(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/map/fit", map[string]any{
		"nodes":    []map[string]any{},
		"viewport": map[string]any{"width": -1},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAllocatorShare(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/allocator/share", map[string]any{
		"shares": []map[string]any{
			{"label": "federation", "value": 40},
			{"label": "border", "value": 35},
			{"label": "frontier", "value": 25},
		},
		"label": "federation",
		"value": 60,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body shareResponse
	decodeBody(t, resp, &body)
	if math.Abs(body.Sum-100) > 1e-9 {
		t.Errorf("sum = %v, want 100", body.Sum)
	}
	if body.Shares[0].Value != 60 {
		t.Errorf("federation = %v, want 60", body.Shares[0].Value)
	}
	if math.Abs(body.Shares[1].Value-23.333333333333336) > 1e-6 {
		t.Errorf("border = %v, want ≈23.33", body.Shares[1].Value)
	}
}

func TestAllocatorShareUnknownLabel(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/allocator/share", map[string]any{
		"shares": []map[string]any{
			{"label": "federation", "value": 100},
		},
		"label": "nope",
		"value": 10,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDraftCRUD(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/drafts/", draftRequest{
		Name:   "frontier heavy",
		Config: galaxy.GenerationConfig{TotalSectors: 700},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created drafts.Draft
	decodeBody(t, resp, &created)

	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/drafts/%s", srv.URL, created.ID))
	if err != nil {
		t.Fatalf("GET draft: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
	var fetched drafts.Draft
	decodeBody(t, getResp, &fetched)
	if fetched.Name != "frontier heavy" || fetched.Config.TotalSectors != 700 {
		t.Errorf("fetched draft = %+v", fetched)
	}

	listResp, err := http.Get(srv.URL + "/api/v1/drafts/")
	if err != nil {
		t.Fatalf("GET drafts: %v", err)
	}
	var list []drafts.Draft
	decodeBody(t, listResp, &list)
	if len(list) != 1 {
		t.Errorf("list length = %d, want 1", len(list))
	}

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/drafts/%s", srv.URL, created.ID), nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE draft: %v", err)
	}
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", delResp.StatusCode)
	}

	missing, err := http.Get(fmt.Sprintf("%s/api/v1/drafts/%s", srv.URL, created.ID))
	if err != nil {
		t.Fatalf("GET deleted draft: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", missing.StatusCode)
	}
}

func TestDraftInvalidID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/drafts/not-a-uuid")
	if err != nil {
		t.Fatalf("GET draft: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/galaxy/generate", map[string]any{
		"name":          "New Frontier",
		"total_sectors": 300,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var result universe.GenerateResult
	decodeBody(t, resp, &result)
	if result.Name != "New Frontier" || result.SectorCount != 300 {
		t.Errorf("result = %+v", result)
	}
}
