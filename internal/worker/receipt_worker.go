package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the PDF receipt for a
// persisted sale and mails it to the customer. Runs strictly after the sale
// transaction has committed, so a failure here never affects stock or the
// sale record.

import (
	"context"
	"encoding/json"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/infra"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID        string `json:"sale_id"`
	CustomerEmail string `json:"customer_email"`
}

type ReceiptWorker struct {
	sales       repository.SaleRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewReceiptWorker(sales repository.SaleRepository, mailer *infra.Mailer, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{sales: sales, mailer: mailer, storagePath: storagePath}
}

// Process renders the PDF and sends it. Best-effort: errors are logged, not retried.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: bad sale id")
		return
	}

	sale, err := w.sales.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: pdf generation failed")
		return
	}

	if payload.CustomerEmail == "" {
		log.Info().Str("sale_id", payload.SaleID).Str("path", pdfPath).Msg("receipt_worker: pdf stored, no email requested")
		return
	}

	body := "Thank you for your purchase. Your receipt is attached."
	if err := w.mailer.Send(payload.CustomerEmail, "Your pharmacy receipt", body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.CustomerEmail).Msg("receipt_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.CustomerEmail).Str("sale_id", payload.SaleID).Msg("receipt_worker: receipt sent")
}
