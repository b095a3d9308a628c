package schema

import "github.com/hamba/avro/v2"

const CatalogSyncSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "sync_event",
	"fields" : [
		{"name": "version", "type": "long"},
		{"name": "product_count", "type": "long"},
		{"name": "reason", "type": "string"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A CatalogSyncEventV1 announces a catalog version change.
// OccurredAt is unix milliseconds.
type CatalogSyncEventV1 struct {
	Version      int64  `avro:"version"`
	ProductCount int64  `avro:"product_count"`
	Reason       string `avro:"reason"`
	OccurredAt   int64  `avro:"occurred_at"`
}

func CatalogSyncV1Avro() avro.Schema {
	return avro.MustParse(CatalogSyncSchemaTextV1)
}
