package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// ContentUseCase is the subset of the use case layer serving tier content
type ContentUseCase interface {
	TierContent(tier types.Tier) (*model.TierContent, error)
	AllTierContents() []model.TierContent
}

type tierResponse struct {
	Tier    types.Tier        `json:"tier"`
	Badge   types.Badge       `json:"badge"`
	Content model.TierContent `json:"content"`
}

type tierListResponse struct {
	Tiers []tierResponse `json:"tiers"`
}

func (s *Server) listTiers(w http.ResponseWriter, r *http.Request) {
	contents := s.contentUC.AllTierContents()
	resp := tierListResponse{
		Tiers: make([]tierResponse, len(contents)),
	}
	for i, c := range contents {
		resp.Tiers[i] = tierResponse{
			Tier:    c.Tier,
			Badge:   c.Tier.Badge(),
			Content: c,
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getTier(w http.ResponseWriter, r *http.Request) {
	tier, err := types.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, r, goerr.Wrap(model.ErrUnknownTier, err.Error()))
		return
	}

	content, err := s.contentUC.TierContent(tier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tierResponse{
		Tier:    tier,
		Badge:   tier.Badge(),
		Content: *content,
	})
}
