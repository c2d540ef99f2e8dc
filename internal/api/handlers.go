package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/allocator"
	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/galaxy"
	"github.com/meridian/starchart/pkg/pipeline"
	"github.com/meridian/starchart/pkg/starmap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Version,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.Galaxy.Status(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var cfg galaxy.GenerationConfig
	if err := decode(r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.Galaxy.Generate(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

// buildResponse is the map/build response envelope.
type buildResponse struct {
	GraphHash string            `json:"graph_hash"`
	Graph     starmap.Graph     `json:"graph"`
	Transform starmap.Transform `json:"transform"`
	Stats     buildStats        `json:"stats"`
	CacheInfo buildCacheInfo    `json:"cache_info"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
}

type buildStats struct {
	SectorCount int   `json:"sector_count"`
	EdgeCount   int   `json:"edge_count"`
	FetchMS     int64 `json:"fetch_ms"`
	BuildMS     int64 `json:"build_ms"`
	RenderMS    int64 `json:"render_ms"`
}

type buildCacheInfo struct {
	FetchHit  bool `json:"fetch_hit"`
	BuildHit  bool `json:"build_hit"`
	RenderHit bool `json:"render_hit"`
}

func (s *Server) handleMapBuild(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decode(r, &opts); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, buildResponse{
		GraphHash: result.GraphHash,
		Graph:     result.Graph,
		Transform: result.Transform,
		Stats: buildStats{
			SectorCount: result.Stats.SectorCount,
			EdgeCount:   result.Stats.EdgeCount,
			FetchMS:     result.Stats.FetchTime.Milliseconds(),
			BuildMS:     result.Stats.BuildTime.Milliseconds(),
			RenderMS:    result.Stats.RenderTime.Milliseconds(),
		},
		CacheInfo: buildCacheInfo{
			FetchHit:  result.CacheInfo.FetchHit,
			BuildHit:  result.CacheInfo.BuildHit,
			RenderHit: result.CacheInfo.RenderHit,
		},
		Artifacts: result.Artifacts,
	})
}

// fitRequest carries a node set and viewport for a standalone fit call,
// letting the frontend re-fit after filtering without a rebuild.
type fitRequest struct {
	Nodes    []starmap.Node   `json:"nodes"`
	Viewport starmap.Viewport `json:"viewport"`
}

func (s *Server) handleMapFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Viewport.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, starmap.Fit(req.Nodes, req.Viewport))
}

// shareRequest adjusts one share of a distribution and returns the
// rebalanced whole.
type shareRequest struct {
	Total  float64           `json:"total,omitempty"`
	Shares []allocator.Share `json:"shares"`
	Label  string            `json:"label"`
	Value  float64           `json:"value"`
}

type shareResponse struct {
	Shares []allocator.Share `json:"shares"`
	Sum    float64           `json:"sum"`
}

func (s *Server) handleAllocatorShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Total == 0 {
		req.Total = 100
	}

	group, err := allocator.New(req.Total, req.Shares)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := group.SetShare(req.Label, req.Value); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, shareResponse{
		Shares: group.Shares(),
		Sum:    group.Sum(),
	})
}

// draftRequest is the create/update payload.
type draftRequest struct {
	Name   string                  `json:"name"`
	Config galaxy.GenerationConfig `json:"config"`
}

func (s *Server) handleDraftList(w http.ResponseWriter, r *http.Request) {
	list, err := s.Drafts.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	draft, err := s.Drafts.Create(r.Context(), req.Name, req.Config)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	draft, err := s.Drafts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDraftUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req draftRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	draft, err := s.Drafts.Update(r.Context(), id, req.Config)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.Drafts.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func draftID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid draft id")
	}
	return id, nil
}
