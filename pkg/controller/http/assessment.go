package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
	"github.com/secmon-lab/tierscope/pkg/utils/errutil"
)

// AssessmentUseCase is the subset of the use case layer driving assessments
type AssessmentUseCase interface {
	Start(ctx context.Context) (*model.AssessmentSnapshot, error)
	Get(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error)
	SelectAnswer(ctx context.Context, id model.AssessmentID, step types.Step, value string) (*model.AssessmentSnapshot, error)
	RecordInfrastructure(ctx context.Context, id model.AssessmentID, flags model.InfrastructureFlags) (*model.AssessmentSnapshot, error)
	GoBack(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error)
	Restart(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error)
	Delete(ctx context.Context, id model.AssessmentID) error
}

// errBadRequest marks request decoding failures
var errBadRequest = goerr.New("bad request")

type selectAnswerRequest struct {
	Value string `json:"value"`
}

func assessmentID(r *http.Request) model.AssessmentID {
	return model.AssessmentID(chi.URLParam(r, "id"))
}

func (s *Server) startAssessment(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.assessmentUC.Start(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, snapshot)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.assessmentUC.Get(r.Context(), assessmentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	if err := s.assessmentUC.Delete(r.Context(), assessmentID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectAnswer(w http.ResponseWriter, r *http.Request) {
	step, err := types.ParseStep(chi.URLParam(r, "step"))
	if err != nil {
		writeError(w, r, goerr.Wrap(errBadRequest, err.Error()))
		return
	}

	var req selectAnswerRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	snapshot, err := s.assessmentUC.SelectAnswer(r.Context(), assessmentID(r), step, req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) recordInfrastructure(w http.ResponseWriter, r *http.Request) {
	var flags model.InfrastructureFlags
	if err := s.decode(w, r, &flags); err != nil {
		writeError(w, r, err)
		return
	}

	snapshot, err := s.assessmentUC.RecordInfrastructure(r.Context(), assessmentID(r), flags)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) goBack(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.assessmentUC.GoBack(r.Context(), assessmentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.assessmentUC.Restart(r.Context(), assessmentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return goerr.Wrap(errBadRequest, "request body is empty")
		}
		return goerr.Wrap(errBadRequest, "invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}

// statusCode maps domain errors onto HTTP status codes
func statusCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAssessmentNotFound),
		errors.Is(err, model.ErrUnknownTier):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrMissingAnswer),
		errors.Is(err, model.ErrUnknownAnswer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusCode(err))
}
