package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldStage is the structured log field key for the pipeline stage name.
	FieldStage = "stage"
	// FieldModel is the structured log field key for the remote model identifier.
	FieldModel = "model"
)

// StageField returns the standard field for a pipeline stage name. Empty
// values produce a no-op field to keep entries compact.
func StageField(stage string) zap.Field {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return zap.Skip()
	}
	return zap.String(FieldStage, stage)
}

// ModelField returns the standard field for the model that served a remote
// call. Empty values produce a no-op field.
func ModelField(model string) zap.Field {
	model = strings.TrimSpace(model)
	if model == "" {
		return zap.Skip()
	}
	return zap.String(FieldModel, model)
}
