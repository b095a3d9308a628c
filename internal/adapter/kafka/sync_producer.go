package kafka

import (
	"context"
	"log/slog"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SyncProducer = (*CatalogSyncProducer)(nil)

// All sync events share one record key, so the compacted version table
// keeps exactly the latest announcement.
const syncRecordKey = "catalog"

// A CatalogSyncProducer announces catalog version changes to the sync
// stream.
type CatalogSyncProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewCatalogSyncProducer(
	opts ...ProducerOpt,
) (CatalogSyncProducer, error) {
	const op = "NewCatalogSyncProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogSyncProducer{}, opErr(err, op)
		}
	}
	return CatalogSyncProducer{options.cl, options.encoder}, nil
}

func (p CatalogSyncProducer) Close() {
	const op = "CatalogSyncProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CatalogSyncProducer) ProduceSync(
	ctx context.Context, evt domain.CatalogSyncEvent,
) error {
	const op = "CatalogSyncProducer.ProduceSync"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	value, err := p.encoder.Encode(syncEventToSchemaV1(evt))
	if err != nil {
		return opErr(err, op)
	}

	rec := &kgo.Record{Key: []byte(syncRecordKey), Value: value}
	res := p.cl.ProduceSync(ctx, rec)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}

	slog.Info("sync event produced",
		"op", op, "version", evt.Version, "reason", evt.Reason)
	return nil
}
