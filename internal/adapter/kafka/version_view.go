package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/storeworks/storefront/internal/core/port"
)

var _ port.VersionObserver = (*CatalogVersionView)(nil)

// A CatalogVersionView reads the compacted version table
// and exposes the latest observed catalog version.
type CatalogVersionView struct {
	gv *goka.View
}

func NewCatalogVersionView(
	seedBrokers []string, groupTable string,
) (*CatalogVersionView, error) {
	const op = "NewCatalogVersionView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		versionValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &CatalogVersionView{gv}, nil
}

func (v *CatalogVersionView) Run(ctx context.Context) {
	const op = "CatalogVersionView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// ObservedVersion returns the latest version announced on the sync
// stream. The second result is false until any event is observed.
func (v *CatalogVersionView) ObservedVersion() (uint64, bool) {
	const op = "CatalogVersionView.ObservedVersion"
	log := slog.With("op", op)

	value, err := v.gv.Get(syncRecordKey)
	if err != nil {
		log.Error("failed to get view data", "err", err)
		return 0, false
	}

	if value == nil {
		return 0, false
	}

	vv, ok := value.(versionValue)
	if !ok {
		log.Error("unexpected type of data", "value", value)
		return 0, false
	}

	return uint64(vv), true
}
