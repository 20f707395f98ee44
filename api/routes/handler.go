// Package routes exposes the planning engine to the external presentation
// layer over HTTP. The core defines the data; this package only maps it to
// JSON.
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/evroute/core/charging"
	"github.com/kilianp07/evroute/core/compare"
	"github.com/kilianp07/evroute/core/logger"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
)

type compareRequest struct {
	Start          *model.Coordinate     `json:"start,omitempty"`
	End            *model.Coordinate     `json:"end,omitempty"`
	StartNode      string                `json:"start_node,omitempty"`
	EndNode        string                `json:"end_node,omitempty"`
	Profile        string                `json:"profile,omitempty"`
	Vehicle        *model.VehicleProfile `json:"vehicle,omitempty"`
	Strategies     []string              `json:"strategies,omitempty"`
	TimeoutSeconds int                   `json:"timeout_seconds,omitempty"`
}

type compareResponse struct {
	RequestID      string                   `json:"request_id"`
	Start          model.NodeID             `json:"start"`
	End            model.NodeID             `json:"end"`
	Results        map[string]model.Outcome `json:"results"`
	BestByTime     string                   `json:"best_by_time,omitempty"`
	BestByEnergy   string                   `json:"best_by_energy,omitempty"`
	BestByDistance string                   `json:"best_by_distance,omitempty"`
}

// NewCompareHandler returns the handler for POST /api/compare. onResult, when
// non-nil, is invoked with every successful comparison after the response is
// computed (e.g. to forward results to a broker).
func NewCompareHandler(planner *compare.Planner, log logger.Logger, onResult func(model.ComparisonResult)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var in compareRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		req, err := buildRequest(in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := planner.Compare(r.Context(), req)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, network.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}

		if onResult != nil {
			onResult(res)
		}

		w.Header().Set("Content-Type", "application/json")
		out := compareResponse{
			RequestID:      res.RequestID,
			Start:          res.Start,
			End:            res.End,
			Results:        res.ResultsByName(),
			BestByTime:     res.BestByTime,
			BestByEnergy:   res.BestByEnergy,
			BestByDistance: res.BestByDistance,
		}
		if err := json.NewEncoder(w).Encode(out); err != nil {
			log.Errorf("encode comparison: %v", err)
		}
	})
}

func buildRequest(in compareRequest) (compare.Request, error) {
	var req compare.Request

	if in.StartNode != "" {
		req.StartNode = model.NodeID(in.StartNode)
	} else if in.Start != nil {
		req.StartCoord = *in.Start
	} else {
		return req, errors.New("start or start_node is required")
	}
	if in.EndNode != "" {
		req.EndNode = model.NodeID(in.EndNode)
	} else if in.End != nil {
		req.EndCoord = *in.End
	} else {
		return req, errors.New("end or end_node is required")
	}

	if in.Vehicle != nil {
		req.Vehicle = *in.Vehicle
	} else {
		profile, err := model.DefaultProfile(model.ProfileKind(in.Profile))
		if err != nil {
			return req, err
		}
		req.Vehicle = profile
	}
	if err := req.Vehicle.Validate(); err != nil {
		return req, err
	}

	if len(in.Strategies) == 0 {
		req.Strategies = []model.StrategyKind{model.StrategyUniformCost, model.StrategyAStar}
	} else {
		for _, s := range in.Strategies {
			kind, err := model.ParseStrategy(s)
			if err != nil {
				return req, err
			}
			req.Strategies = append(req.Strategies, kind)
		}
	}
	req.TimeoutSeconds = in.TimeoutSeconds
	return req, nil
}

type networkResponse struct {
	Nodes    int `json:"nodes"`
	Edges    int `json:"edges"`
	Stations int `json:"stations"`
}

// NewNetworkHandler returns the handler for GET /api/network.
func NewNetworkHandler(net *network.Network, reg *charging.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(networkResponse{
			Nodes:    net.NodeCount(),
			Edges:    net.EdgeCount(),
			Stations: reg.Count(),
		})
	})
}

// NewHealthHandler returns the handler for GET /healthz.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
