package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oceanomics/faire2ena/internal/ena"
	"github.com/oceanomics/faire2ena/internal/faire"
	"github.com/oceanomics/faire2ena/internal/mapping"
	"github.com/oceanomics/faire2ena/internal/validator"
)

// convertSampleRequest is one FAIRe record to preview.
type convertSampleRequest struct {
	ProjectName string            `json:"project_name,omitempty"`
	Record      map[string]string `json:"record"`
}

// convertSampleResponse carries the mapped record and its rendered XML.
type convertSampleResponse struct {
	Alias    string              `json:"alias"`
	Fields   mapping.Destination `json:"fields"`
	XML      string              `json:"xml"`
	Warnings []string            `json:"warnings,omitempty"`
}

func (s *Server) handleConvertSample(w http.ResponseWriter, r *http.Request) {
	var req convertSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Record) == 0 {
		writeError(w, http.StatusBadRequest, "record is required")
		return
	}

	projectName := req.ProjectName
	if projectName == "" {
		projectName = s.cfg.Submission.ProjectName
	}

	rec := recordFromRequest(req.Record)
	alias := rec.GetString("samp_name")
	if alias == "" {
		alias = "unknown"
	}

	tables := mapping.DefaultTables()
	mapper := mapping.NewMapper(tables)

	dest, warnings := mapper.Convert(rec, projectName)
	filled, err := mapper.FillDefaults(dest, alias)
	warnings = append(warnings, filled...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, vw := range validator.New().ValidateRecord(dest, alias).Warnings {
		warnings = append(warnings, vw.String())
	}

	writer := ena.NewSampleWriter(s.cfg.Submission.TaxonID, s.cfg.Submission.CenterName, tables.Units, tables.Mandatory)

	writeJSON(w, http.StatusOK, convertSampleResponse{
		Alias:    alias,
		Fields:   dest,
		XML:      writer.WriteSample(dest, alias),
		Warnings: warnings,
	})
}

// convertRunRequest previews one experiment/run record against a known
// sample accession.
type convertRunRequest struct {
	Record          map[string]string `json:"record"`
	SampleAccession string            `json:"sample_accession"`
	Assay           string            `json:"assay,omitempty"`
}

type convertRunResponse struct {
	ExperimentAlias string `json:"experiment_alias"`
	ExperimentXML   string `json:"experiment_xml"`
	RunXML          string `json:"run_xml"`
}

func (s *Server) handleConvertRun(w http.ResponseWriter, r *http.Request) {
	var req convertRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Record) == 0 || req.SampleAccession == "" {
		writeError(w, http.StatusBadRequest, "record and sample_accession are required")
		return
	}

	rec := recordFromRequest(req.Record)
	alias := rec.GetString("lib_id")
	if alias == "" {
		alias = rec.GetString("samp_name")
	}
	if alias == "" {
		writeError(w, http.StatusBadRequest, "record has neither lib_id nor samp_name")
		return
	}
	if req.Assay != "" {
		alias += "_" + req.Assay
	}

	writer := ena.NewRunWriter(s.cfg.Submission.StudyAccession, s.cfg.Submission.CenterName, s.cfg.Submission.InstrumentModel)

	writeJSON(w, http.StatusOK, convertRunResponse{
		ExperimentAlias: alias,
		ExperimentXML:   writer.WriteExperiment(rec, req.SampleAccession, alias),
		RunXML:          writer.WriteRun(rec, alias, alias+"_run"),
	})
}

func (s *Server) handleListAccessions(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "accession registry not available")
		return
	}

	accessions, err := s.db.LoadAccessions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(accessions),
		"accessions": accessions.Entries(),
	})
}

func (s *Server) handleGetAccession(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "accession registry not available")
		return
	}

	alias := mux.Vars(r)["alias"]
	accession, found, err := s.db.LookupAccession(alias)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no accession for alias "+alias)
		return
	}

	writeJSON(w, http.StatusOK, ena.ReceiptEntry{Alias: alias, Accession: accession})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":   "ok",
		"registry": s.db != nil,
	}
	writeJSON(w, http.StatusOK, status)
}

func recordFromRequest(fields map[string]string) faire.Record {
	rec := make(faire.Record, len(fields))
	for k, v := range fields {
		rec[k] = faire.NewValue(v)
	}
	return rec
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
