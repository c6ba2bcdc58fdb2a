// Package audit writes every resolution to Elasticsearch so caregivers can
// review what the assistant heard and did. Recording is best effort; a dead
// cluster never blocks a command.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/bumperr/gPBL-G8/internal/common/database"
	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

type Recorder struct {
	es      *database.ElasticsearchClient
	index   string
	enabled bool
	logger  logger.Logger
}

func NewRecorder(es *database.ElasticsearchClient, index string, enabled bool, log logger.Logger) *Recorder {
	return &Recorder{
		es:      es,
		index:   index,
		enabled: enabled,
		logger:  log,
	}
}

// Record indexes one resolution under its request id. Failures are logged
// and swallowed.
func (r *Recorder) Record(ctx context.Context, res *models.Resolution) {
	if !r.enabled || r.es == nil {
		return
	}
	if err := r.indexResolution(ctx, res); err != nil {
		r.logger.WithError(err).Error("audit record dropped", map[string]interface{}{
			"request_id": res.RequestID,
		})
	}
}

func (r *Recorder) indexResolution(ctx context.Context, res *models.Resolution) error {
	body, err := json.Marshal(res)
	if err != nil {
		return errors.NewAuditIndexFailedError(fmt.Errorf("marshal resolution: %w", err))
	}

	client := r.es.GetClient()
	resp, err := client.Index(
		r.index,
		bytes.NewReader(body),
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(res.RequestID),
	)
	if err != nil {
		return errors.NewAuditIndexFailedError(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return errors.NewAuditIndexFailedError(fmt.Errorf("index response: %s", resp.Status()))
	}
	return nil
}
