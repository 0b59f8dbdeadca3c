package worker

import (
	"context"
	"log"
	"time"
)

// QueueInspector devolve quantas mensagens estão paradas numa fila.
type QueueInspector interface {
	Depth(queue string) (int, error)
}

type DepthReporter func(queue string, depth int)

type QueueMonitor struct {
	inspector    QueueInspector
	queues       []string
	alertQueue   string
	report       DepthReporter
	tickInterval time.Duration
}

// NewQueueMonitor acompanha a profundidade das filas de conversões falhadas.
// alertQueue é a fila que não deveria acumular nada (a DLQ).
func NewQueueMonitor(inspector QueueInspector, report DepthReporter, alertQueue string, queues ...string) *QueueMonitor {
	return &QueueMonitor{
		inspector:    inspector,
		queues:       queues,
		alertQueue:   alertQueue,
		report:       report,
		tickInterval: 1 * time.Minute, // Roda a cada 1 min
	}
}

func (w *QueueMonitor) Start(ctx context.Context) {
	log.Printf("🕒 Monitor de filas iniciado (%d filas)", len(w.queues))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.check()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Monitor de filas encerrado")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *QueueMonitor) check() {
	for _, q := range w.queues {
		depth, err := w.inspector.Depth(q)
		if err != nil {
			log.Printf("❌ Erro ao consultar fila %s: %v", q, err)
			continue
		}

		if w.report != nil {
			w.report(q, depth)
		}

		if q == w.alertQueue && depth > 0 {
			log.Printf("⚠️ %d conversão(ões) na fila %s aguardando análise", depth, q)
		}
	}
}
