package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/sim"
)

var columns = []string{"t", "x1", "v1", "x2", "v2"}

// WriteCSV writes one row per sample: t, x1, v1, x2, v2. Values use the
// shortest form that parses back to the same float64.
func WriteCSV(w io.Writer, series *sim.TimeSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for i, s := range series.States {
		row[0] = strconv.FormatFloat(series.T[i], 'g', -1, 64)
		for j, v := range s {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row[:len(s)+1]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Integrator  string             `json:"integrator"`
	Mass        float64            `json:"mass"`
	K1          float64            `json:"k1"`
	K2          float64            `json:"k2"`
	InitState   []float64          `json:"init_state"`
	Samples     int                `json:"samples"`
	Steps       int                `json:"steps"`
	Rejected    int                `json:"rejected"`
	Evaluations int                `json:"evaluations"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

func WriteJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	series := result.Series
	data := ExportData{
		Integrator:  cfg.Integrator,
		Mass:        cfg.Physics.Mass,
		K1:          cfg.Physics.K1,
		K2:          cfg.Physics.K2,
		InitState:   cfg.InitialState(),
		Samples:     series.Len(),
		Steps:       result.StepsTaken,
		Rejected:    result.Rejected,
		Evaluations: result.Evaluations,
		Times:       series.T,
		States:      make([][]float64, len(series.States)),
		Metrics:     result.Metrics,
	}
	for i, s := range series.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
