package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"votingsystem/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	LedgerID    string `json:"ledgerId"`
	Candidates  int    `json:"candidates"`
	TotalVotes  int    `json:"totalVotes"`
	Subscribers int    `json:"subscribers"`
}

// CandidatesResponse lists the ballot in registration order
type CandidatesResponse struct {
	Candidates []string `json:"candidates"`
}

// ResultsResponse is the response for the results endpoint
type ResultsResponse struct {
	TotalVotes int           `json:"totalVotes"`
	Results    []ResultEntry `json:"results"`
}

// ResultEntry is one row of the results, with the share pre-formatted
type ResultEntry struct {
	Name       string  `json:"name"`
	VoteCount  int     `json:"voteCount"`
	Percentage float64 `json:"percentage"`
	Share      string  `json:"share"`
}

// VotersResponse is the response for the voter roll endpoint
type VotersResponse struct {
	Count  int            `json:"count"`
	Voters []domain.Voter `json:"voters"`
}

// Error codes
const (
	ErrCodeNoCandidates  = "NO_CANDIDATES"
	ErrCodeNoVotes       = "NO_VOTES"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	candidates, votes := s.session.Stats()
	s.sendSuccess(w, &StatsResponse{
		LedgerID:    s.session.ID(),
		Candidates:  candidates,
		TotalVotes:  votes,
		Subscribers: s.session.SubscriberCount(),
	})
}

// handleCandidates handles GET /api/candidates
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &CandidatesResponse{
		Candidates: s.session.ListCandidateNames(),
	})
}

// handleResults handles GET /api/results
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.session.ComputeResults()
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			s.sendError(w, http.StatusNotFound, ErrCodeNoCandidates, "No candidates registered")
		} else {
			s.sendError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
		}
		return
	}

	resp := &ResultsResponse{Results: make([]ResultEntry, 0, len(results))}
	for _, t := range results {
		resp.TotalVotes += t.VoteCount
		resp.Results = append(resp.Results, ResultEntry{
			Name:       t.Name,
			VoteCount:  t.VoteCount,
			Percentage: t.Percentage,
			Share:      t.PercentageString(),
		})
	}
	s.sendSuccess(w, resp)
}

// handleVoters handles GET /api/voters
func (s *Server) handleVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := s.session.ListVoters()
	if err != nil {
		if errors.Is(err, domain.ErrNoVotes) {
			s.sendError(w, http.StatusNotFound, ErrCodeNoVotes, "No votes cast yet")
		} else {
			s.sendError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
		}
		return
	}

	s.sendSuccess(w, &VotersResponse{
		Count:  len(voters),
		Voters: voters,
	})
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	}); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}
