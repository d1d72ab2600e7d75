package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/usecase"
	"github.com/vesper-lab/adjutant/pkg/utils/async"
	"github.com/vesper-lab/adjutant/pkg/utils/errutil"
)

type commandRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	Timezone  string `json:"timezone"`
}

type commandResponse struct {
	LogLines []string `json:"logLines"`
	Speech   string   `json:"speech"`
	Actions  int      `json:"actions"`
}

// commandHandler is the inbound entry point: one free-form command in, the
// complete dispatch log out. The response is HTTP 200 even when individual
// actions failed; failures are reported inside logLines.
func (s *Server) commandHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid command request body"), http.StatusBadRequest)
		return
	}

	result := s.uc.RunCommand(ctx, usecase.CommandInput{
		Text:      req.Text,
		Source:    req.Source,
		UserID:    types.UserID(req.UserID),
		UserEmail: req.UserEmail,
		Timezone:  req.Timezone,
	})

	resp := commandResponse{
		LogLines: result.LogLines,
		Speech:   usecase.SpeechReply(result.LogLines, req.Source),
		Actions:  len(result.Actions),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode command response")
	}
}

// contactRefreshHandler kicks off one contact sync cycle in the background
// and returns immediately
func (s *Server) contactRefreshHandler(w http.ResponseWriter, r *http.Request) {
	async.Dispatch(r.Context(), s.refresher.Refresh)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"refreshing"}`)) //nolint:errcheck // header already committed
}
