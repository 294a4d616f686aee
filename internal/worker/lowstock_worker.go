package worker

// lowstock_worker.go
// After a sale commits, the service enqueues the ids of the medicines it
// decremented; this worker re-reads them and emails an alert for any that
// dropped to or below their reorder threshold.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/infra"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LowStockJobPayload carries the medicines touched by one sale.
type LowStockJobPayload struct {
	MedicineIDs []string `json:"medicine_ids"`
}

type LowStockWorker struct {
	medicines  repository.MedicineRepository
	mailer     *infra.Mailer
	alertEmail string
}

func NewLowStockWorker(medicines repository.MedicineRepository, mailer *infra.Mailer, alertEmail string) *LowStockWorker {
	return &LowStockWorker{medicines: medicines, mailer: mailer, alertEmail: alertEmail}
}

func (w *LowStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	if w.alertEmail == "" {
		return
	}

	var payload LowStockJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("lowstock_worker: invalid payload")
		return
	}

	var alerts []string
	for _, idStr := range payload.MedicineIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		m, err := w.medicines.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if m.Quantity <= m.MinQuantity {
			alerts = append(alerts, fmt.Sprintf("%s (batch %s): %d left, reorder at %d",
				m.Name, m.BatchNumber, m.Quantity, m.MinQuantity))
		}
	}
	if len(alerts) == 0 {
		return
	}

	body := "The following medicines are at or below their reorder threshold:\n\n" +
		strings.Join(alerts, "\n")
	if err := w.mailer.Send(w.alertEmail, "Low stock alert", body, ""); err != nil {
		log.Error().Err(err).Msg("lowstock_worker: failed to send alert")
		return
	}
	log.Info().Int("medicines", len(alerts)).Msg("lowstock_worker: alert sent")
}
