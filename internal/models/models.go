package models

import (
	"math"

	"pedal/internal/chart"
	"pedal/internal/engine"
)

type DatasetSummary struct {
	Source  string       `json:"source"`
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
}

type ColumnInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ColumnStats is one row of the describe table. Undefined statistics,
// such as the deviation of a single value, are null.
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q1     *float64 `json:"25%"`
	Median *float64 `json:"50%"`
	Q3     *float64 `json:"75%"`
	Max    *float64 `json:"max"`
}

type RowsPage struct {
	Columns []string   `json:"columns"`
	Data    [][]string `json:"data"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

const (
	StatusReady         = "ready"
	StatusAwaitingInput = "awaiting_input"
)

type ResolveResponse struct {
	Status  string               `json:"status"`
	Config  *chart.Configuration `json:"config,omitempty"`
	Keys    []string             `json:"keys,omitempty"`
	Missing []chart.Role         `json:"missing,omitempty"`
}

type ChartTypeInfo struct {
	Type        chart.Type `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Spec        chart.Spec `json:"spec"`
}

func NewDatasetSummary(ds *engine.Dataset) DatasetSummary {
	cols := make([]ColumnInfo, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = ColumnInfo{Name: c.Name, Kind: c.Kind.String()}
	}
	return DatasetSummary{Source: ds.Source, Rows: ds.Len(), Columns: cols}
}

func NewColumnStats(s engine.Summary) ColumnStats {
	return ColumnStats{
		Column: s.Column,
		Count:  s.Count,
		Mean:   finite(s.Mean),
		Std:    finite(s.Std),
		Min:    finite(s.Min),
		Q1:     finite(s.Q1),
		Median: finite(s.Median),
		Q3:     finite(s.Q3),
		Max:    finite(s.Max),
	}
}

func NewResolveResponse(res chart.Resolution) ResolveResponse {
	if !res.Ready() {
		return ResolveResponse{Status: StatusAwaitingInput, Missing: res.Missing}
	}
	return ResolveResponse{Status: StatusReady, Config: res.Config, Keys: res.Config.Keys()}
}

func NewChartTypeInfo(e chart.Entry) ChartTypeInfo {
	return ChartTypeInfo{Type: e.Type, Label: e.Label, Description: e.Description, Spec: e.Spec}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
