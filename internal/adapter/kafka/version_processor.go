package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/storeworks/storefront/pkg/schema"
)

// A syncEventCodec used for serde [schema.CatalogSyncEventV1]
type syncEventCodec struct {
	serde Serde
}

func newSyncEventCodec(s Serde) syncEventCodec {
	return syncEventCodec{s}
}

func (c syncEventCodec) Encode(v any) ([]byte, error) {
	const op = "syncEventCodec.Encode"
	if _, ok := v.(schema.CatalogSyncEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c syncEventCodec) Decode(data []byte) (any, error) {
	const op = "syncEventCodec.Decode"
	var s schema.CatalogSyncEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A versionValue represents the latest announced catalog version.
type versionValue uint64

// A versionValueCodec used for serde [versionValue]
type versionValueCodec struct{}

func (versionValueCodec) Encode(v any) ([]byte, error) {
	const op = "versionValueCodec.Encode"
	vv, ok := v.(versionValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendUint([]byte(nil), uint64(vv), 10)
	return data, nil
}

func (versionValueCodec) Decode(data []byte) (any, error) {
	const op = "versionValueCodec.Decode"
	vv, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return versionValue(vv), nil
}

// A CatalogVersionProcessor folds sync events
// from the stream topic into the compacted version table.
type CatalogVersionProcessor struct {
	gp *goka.Processor
}

func NewCatalogVersionProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	syncEventSerde Serde,
) (CatalogVersionProcessor, error) {
	const op = "NewCatalogVersionProc"

	var p CatalogVersionProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newSyncEventCodec(syncEventSerde),
			p.processFn,
		),
		goka.Persist(versionValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return CatalogVersionProcessor{}, opErr(err, op)
	}

	return CatalogVersionProcessor{gp}, nil
}

func (p CatalogVersionProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "CatalogVersionProcessor.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go p.run(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p CatalogVersionProcessor) Close() {
	const op = "CatalogVersionProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p CatalogVersionProcessor) run(
	ctx context.Context, stopFn context.CancelFunc,
) {
	const op = "CatalogVersionProcessor.run"
	log := slog.With("op", op)

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p CatalogVersionProcessor) waitForReady(ctx context.Context) {
	const op = "CatalogVersionProcessor.waitForReady"
	log := slog.With("op", op)

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (CatalogVersionProcessor) processFn(ctx goka.Context, msg any) {
	const op = "CatalogVersionProcessor.processFn"
	log := slog.With("op", op)

	event, _ := msg.(schema.CatalogSyncEventV1)
	next := versionValue(event.Version)

	// Events may arrive out of order on restart, the table keeps the max.
	if prev, ok := ctx.Value().(versionValue); ok && prev >= next {
		return
	}

	ctx.SetValue(next)
	log.Info(
		"set catalog version",
		"version", uint64(next),
		"reason", event.Reason,
	)
}
