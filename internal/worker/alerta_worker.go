package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertas. After any stock mutation
// the services enqueue the touched product ids; this worker re-reads the
// aggregates and emails the ones that fell below their minimum.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kajamart/internal/infra"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertaJobPayload is the job envelope sent to QueueAlertas.
type AlertaJobPayload struct {
	ProductoIDs []uuid.UUID `json:"producto_ids"`
}

// AlertaWorker checks product aggregates against their minimum and notifies
// by email.
type AlertaWorker struct {
	productoRepo repository.ProductoRepository
	mailer       *infra.Mailer
	alertTo      string
}

func NewAlertaWorker(productoRepo repository.ProductoRepository, mailer *infra.Mailer, alertTo string) *AlertaWorker {
	return &AlertaWorker{productoRepo: productoRepo, mailer: mailer, alertTo: alertTo}
}

func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}

	bajos, err := w.productoRepo.ListBajoMinimo(ctx, payload.ProductoIDs)
	if err != nil {
		log.Error().Err(err).Msg("alerta_worker: low-stock query failed")
		return
	}
	if len(bajos) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Productos por debajo de su stock mínimo:\n\n")
	for _, p := range bajos {
		fmt.Fprintf(&b, "  - %s: stock %d (mínimo %d)\n", p.Nombre, p.StockActual, p.StockMinimo)
	}

	if w.alertTo == "" {
		log.Warn().Int("productos", len(bajos)).Msg("alerta_worker: no ALERT_EMAIL_TO configured — alert logged only")
		return
	}
	if err := w.mailer.Send(w.alertTo, "Alerta de stock bajo", b.String(), ""); err != nil {
		log.Error().Err(err).Str("to", w.alertTo).Msg("alerta_worker: failed to send alert email")
		return
	}
	log.Info().Int("productos", len(bajos)).Msg("alerta_worker: low-stock alert sent")
}
