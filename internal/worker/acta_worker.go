package worker

// acta_worker.go
// Processes acta generation jobs from QueueActas: renders the PDF acta for a
// committed write-off batch and emails it to the configured address.

import (
	"context"
	"encoding/json"

	"kajamart/internal/infra"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ActaJobPayload is the job envelope sent to QueueActas.
type ActaJobPayload struct {
	BajaID uuid.UUID `json:"baja_id"`
}

type ActaWorker struct {
	bajaRepo    repository.BajaRepository
	mailer      *infra.Mailer
	storagePath string
	alertTo     string
}

func NewActaWorker(bajaRepo repository.BajaRepository, mailer *infra.Mailer, storagePath, alertTo string) *ActaWorker {
	return &ActaWorker{bajaRepo: bajaRepo, mailer: mailer, storagePath: storagePath, alertTo: alertTo}
}

func (w *ActaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ActaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("acta_worker: invalid payload")
		return
	}

	baja, err := w.bajaRepo.FindByID(ctx, payload.BajaID)
	if err != nil {
		log.Error().Err(err).Str("baja_id", payload.BajaID.String()).Msg("acta_worker: batch not found")
		return
	}

	path, err := infra.GenerateActaBajaPDF(baja, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("baja_id", payload.BajaID.String()).Msg("acta_worker: pdf generation failed")
		return
	}
	log.Info().Str("baja_id", payload.BajaID.String()).Str("path", path).Msg("acta_worker: acta generated")

	if w.alertTo == "" {
		return
	}
	if err := w.mailer.Send(w.alertTo, "Acta de baja "+payload.BajaID.String(),
		"Se adjunta el acta de baja generada.", path); err != nil {
		log.Error().Err(err).Str("to", w.alertTo).Msg("acta_worker: failed to email acta")
	}
}
