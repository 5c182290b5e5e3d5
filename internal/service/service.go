// Package service composes the fit advisor, the model catalog and the
// recovery dispatcher behind the httpapi.Service interface.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"advisord/internal/actions"
	"advisord/internal/catalog"
	"advisord/internal/fit"
	"advisord/internal/recovery"
	"advisord/pkg/types"
)

// ReadyFunc reports whether host resources are known.
type ReadyFunc func() bool

// EventSource exposes recently published action events.
type EventSource interface {
	Events() []actions.Event
}

// Config wires the service collaborators. All fields except Logger and Ready are required.
type Config struct {
	Advisor    *fit.Advisor
	Catalog    *catalog.Catalog
	Dispatcher *recovery.Dispatcher
	Nav        *actions.NavState
	Events     EventSource
	Ready      ReadyFunc
	Logger     zerolog.Logger
}

// Service implements httpapi.Service.
type Service struct {
	advisor    *fit.Advisor
	catalog    *catalog.Catalog
	dispatcher *recovery.Dispatcher
	nav        *actions.NavState
	events     EventSource
	ready      ReadyFunc
	log        zerolog.Logger
}

func New(cfg Config) *Service {
	return &Service{
		advisor:    cfg.Advisor,
		catalog:    cfg.Catalog,
		dispatcher: cfg.Dispatcher,
		nav:        cfg.Nav,
		events:     cfg.Events,
		ready:      cfg.Ready,
		log:        cfg.Logger,
	}
}

func (s *Service) ListModels() []types.Model { return s.catalog.List() }

func (s *Service) Resources(ctx context.Context) (types.ResourcesInfo, error) {
	return s.advisor.Resources(ctx)
}

// Fit classifies req against req.TotalRAM, or against the probed host when it is zero.
func (s *Service) Fit(ctx context.Context, req types.FitRequest) types.FitResponse {
	var as fit.Assessment
	if req.TotalRAM > 0 {
		as = s.advisor.AssessWithTotal(req.RequiredRAM, req.TotalRAM)
	} else {
		as = s.advisor.Assess(ctx, req.RequiredRAM)
	}
	return fitResponse("", as)
}

func (s *Service) ModelFit(ctx context.Context, modelID string) (types.FitResponse, error) {
	m, err := s.catalog.Get(modelID)
	if err != nil {
		return types.FitResponse{}, err
	}
	return fitResponse(m.ID, s.advisor.Assess(ctx, float64(m.MaxRAMRequired))), nil
}

// LastFit returns the most recent assessment made by any fit operation.
func (s *Service) LastFit() (types.FitResponse, bool) {
	as, ok := s.advisor.Last()
	if !ok {
		return types.FitResponse{}, false
	}
	return fitResponse("", as), true
}

func fitResponse(modelID string, as fit.Assessment) types.FitResponse {
	resp := types.FitResponse{
		ModelID:     modelID,
		Tier:        as.Tier.String(),
		Label:       as.Label,
		Ratio:       as.Ratio,
		RequiredRAM: as.RequiredRAM,
		TotalRAM:    as.TotalRAM,
	}
	if as.Err != nil {
		resp.Error = as.Err.Error()
	}
	return resp
}

func (s *Service) ClassifyMessage(rec types.MessageRecord) types.DispositionResponse {
	return dispositionResponse(rec.ID, recovery.Classify(recovery.FromRecord(rec)), false)
}

func (s *Service) RecoverMessage(ctx context.Context, rec types.MessageRecord) types.DispositionResponse {
	d := s.dispatcher.Execute(ctx, recovery.FromRecord(rec))
	return dispositionResponse(rec.ID, d, d != recovery.DispositionNone)
}

func dispositionResponse(id string, d recovery.Disposition, executed bool) types.DispositionResponse {
	resp := types.DispositionResponse{MessageID: id, Disposition: d.String(), Executed: executed}
	if s, ok := recovery.SurfaceFor(d); ok {
		resp.Surface = s.Wire()
	}
	return resp
}

// Events lists retained action events, oldest first. It is empty, never nil.
func (s *Service) Events() []types.EventRecord {
	out := []types.EventRecord{}
	if s.events == nil {
		return out
	}
	for _, e := range s.events.Events() {
		out = append(out, types.EventRecord{ID: e.ID, Name: e.Name, MessageID: e.MessageID, Fields: e.Fields, At: e.At})
	}
	return out
}

func (s *Service) UIState() types.UIState { return s.nav.Snapshot() }

// CloseTroubleshooting is the presentation layer dismissing the modal.
func (s *Service) CloseTroubleshooting() {
	s.nav.SetModalTroubleShooting(false)
	s.log.Debug().Msg("troubleshooting modal closed")
}

func (s *Service) Ready() bool {
	if s.ready == nil {
		return true
	}
	return s.ready()
}
