package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"finbalance/internal/models"
)

type rawMetadata struct {
	Operation string `json:"operation"`
	GoalID    string `json:"goal_id"`
	// older clients wrote camelCase
	GoalIDCamel string `json:"goalId"`
}

// parseMetadata normalizes the metadata column, which may hold a JSON object,
// a JSON string wrapping an object, or nothing at all.
func parseMetadata(raw []byte) (models.TransactionMetadata, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.TransactionMetadata{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return models.TransactionMetadata{}, fmt.Errorf("failed to decode metadata string: %w", err)
		}
		return parseMetadata([]byte(inner))
	}

	var m rawMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.TransactionMetadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}

	out := models.TransactionMetadata{GoalID: m.GoalID}
	if out.GoalID == "" {
		out.GoalID = m.GoalIDCamel
	}
	switch models.SavingsOperation(strings.ToLower(strings.TrimSpace(m.Operation))) {
	case models.SavingsOperationAllocate:
		out.Operation = models.SavingsOperationAllocate
	case models.SavingsOperationWithdraw:
		out.Operation = models.SavingsOperationWithdraw
	}
	return out, nil
}

func encodeMetadata(m models.TransactionMetadata) ([]byte, error) {
	if m == (models.TransactionMetadata{}) {
		return nil, nil
	}
	return json.Marshal(m)
}
