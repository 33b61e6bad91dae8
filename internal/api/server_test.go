package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oceanomics/faire2ena/internal/config"
	"github.com/oceanomics/faire2ena/internal/database"
	"github.com/oceanomics/faire2ena/internal/ena"
)

func testServer(t *testing.T, db *database.DB) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Submission.CenterName = "OceanOmics"
	cfg.Submission.ProjectName = "RS_voyage_1"
	cfg.Submission.StudyAccession = "PRJEB00001"
	cfg.Submission.TaxonID = "408172"
	return NewServer(cfg, db, Options{Host: "localhost", Port: 0})
}

func testRegistry(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "accessions.db"))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestConvertSampleEndpoint(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/api/v1/samples/convert", map[string]interface{}{
		"record": map[string]string{
			"samp_name":            "V1_S1",
			"samp_category":        "sample",
			"eventDate":            "2021-05-04",
			"decimalLatitude":      "-17.1",
			"decimalLongitude":     "119.6",
			"geo_loc_name":         "Indian Ocean: Rowley Shoals",
			"env_broad_scale":      "marine biome",
			"env_local_scale":      "coastal water",
			"env_medium":           "sea water",
			"minimumDepthInMeters": "5",
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp struct {
		Alias    string            `json:"alias"`
		Fields   map[string]string `json:"fields"`
		XML      string            `json:"xml"`
		Warnings []string          `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Alias != "V1_S1" {
		t.Errorf("alias = %q", resp.Alias)
	}
	if resp.Fields["geographic_location_country_andor_sea"] != "Indian Ocean" {
		t.Errorf("country = %q", resp.Fields["geographic_location_country_andor_sea"])
	}
	if resp.Fields["project_name"] != "RS_voyage_1" {
		t.Errorf("project_name = %q, should come from config", resp.Fields["project_name"])
	}
	if !strings.Contains(resp.XML, `<SAMPLE alias="V1_S1" center_name="OceanOmics">`) {
		t.Errorf("xml missing sample element:\n%s", resp.XML)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestConvertSampleEndpointBadRequest(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/api/v1/samples/convert", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty record: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest("POST", "/api/v1/samples/convert", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid body: status = %d, want 400", w.Code)
	}
}

func TestConvertRunEndpoint(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/api/v1/runs/convert", map[string]interface{}{
		"record": map[string]string{
			"samp_name":         "V1_S1",
			"filename":          "V1_S1_R1.fastq.gz",
			"checksum_filename": "aaaa1111",
		},
		"sample_accession": "ERS0000001",
		"assay":            "16S",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ExperimentAlias string `json:"experiment_alias"`
		ExperimentXML   string `json:"experiment_xml"`
		RunXML          string `json:"run_xml"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ExperimentAlias != "V1_S1_16S" {
		t.Errorf("experiment alias = %q", resp.ExperimentAlias)
	}
	if !strings.Contains(resp.ExperimentXML, `<SAMPLE_DESCRIPTOR accession="ERS0000001"/>`) {
		t.Error("experiment xml missing sample descriptor")
	}
	if !strings.Contains(resp.RunXML, `<RUN alias="V1_S1_16S_run"`) {
		t.Error("run xml missing run alias")
	}
}

func TestConvertRunEndpointValidation(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/api/v1/runs/convert", map[string]interface{}{
		"record": map[string]string{"filename": "x.fastq.gz"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing accession: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, s, "/api/v1/runs/convert", map[string]interface{}{
		"record":           map[string]string{"filename": "x.fastq.gz"},
		"sample_accession": "ERS0000001",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("record without names: status = %d, want 400", rec.Code)
	}
}

func TestAccessionEndpoints(t *testing.T) {
	db := testRegistry(t)
	if _, err := db.StoreAccessions(ena.AccessionMap{"V1_S1": "ERS0000001"}, "r.xml"); err != nil {
		t.Fatal(err)
	}
	s := testServer(t, db)

	rec := get(s, "/api/v1/accessions")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list struct {
		Count      int                `json:"count"`
		Accessions []ena.ReceiptEntry `json:"accessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || len(list.Accessions) != 1 || list.Accessions[0].Accession != "ERS0000001" {
		t.Errorf("list = %+v", list)
	}

	rec = get(s, "/api/v1/accessions/V1_S1")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	rec = get(s, "/api/v1/accessions/V1_S404")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown alias: status = %d, want 404", rec.Code)
	}
}

func TestAccessionEndpointsWithoutRegistry(t *testing.T) {
	s := testServer(t, nil)

	if rec := get(s, "/api/v1/accessions"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("list: status = %d, want 503", rec.Code)
	}
	if rec := get(s, "/api/v1/accessions/V1_S1"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("get: status = %d, want 503", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t, nil)

	rec := get(s, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health struct {
		Status   string `json:"status"`
		Registry bool   `json:"registry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Registry {
		t.Errorf("health = %+v", health)
	}
}
