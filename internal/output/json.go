package output

import (
	"encoding/json"

	"smf/internal/core"
)

type jsonFormatter struct{}

type diffSummary struct {
	TablesToCreate int `json:"tablesToCreate"`
	TablesToAlter  int `json:"tablesToAlter"`
}

type diffPayload struct {
	Format         string              `json:"format"`
	Summary        diffSummary         `json:"summary"`
	TablesToCreate []*core.Table       `json:"tablesToCreate,omitempty"`
	TablesToAlter  []*core.TableDelta  `json:"tablesToAlter,omitempty"`
}

type planSummary struct {
	Statements int `json:"statements"`
}

type planPayload struct {
	Format  string      `json:"format"`
	Summary planSummary `json:"summary"`
	SQL     []string    `json:"sql,omitempty"`
}

type Payload interface {
	diffPayload | planPayload
}

func (jsonFormatter) FormatDiff(d *core.Delta) (string, error) {
	payload := diffPayload{Format: string(FormatJSON)}
	if d != nil {
		payload.TablesToCreate = d.TablesToCreate
		payload.TablesToAlter = d.TablesToAlter
		payload.Summary = diffSummary{
			TablesToCreate: len(d.TablesToCreate),
			TablesToAlter:  len(d.TablesToAlter),
		}
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatPlan(statements []string) (string, error) {
	sql := normalizeStatements(statements)
	payload := planPayload{
		Format:  string(FormatJSON),
		SQL:     sql,
		Summary: planSummary{Statements: len(sql)},
	}
	return marshalJSON(payload)
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
