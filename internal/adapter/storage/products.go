package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

// Prices are stored as decimal strings so no precision is lost in transit.
type productDoc struct {
	ProductID     string    `bson:"_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description"`
	Price         string    `bson:"price"`
	OriginalPrice string    `bson:"original_price,omitempty"`
	Images        []string  `bson:"images"`
	Category      string    `bson:"category"`
	Featured      bool      `bson:"featured"`
	InStock       bool      `bson:"in_stock"`
	StockQuantity int       `bson:"stock_quantity"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

type catalogMetaDoc struct {
	ID      string `bson:"_id"`
	Version int64  `bson:"version"`
}

const catalogMetaID = "catalog"

type ProductsRepository struct {
	store DocumentStore
}

func NewProductsRepository(store DocumentStore) ProductsRepository {
	return ProductsRepository{store}
}

func (r ProductsRepository) All(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductsRepository.All"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cur, err := r.store.collection(productsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		p, err := r.toDomain(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (r ProductsRepository) Count(ctx context.Context) (int64, error) {
	const op = "ProductsRepository.Count"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := r.store.collection(productsCollection).
		CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r ProductsRepository) Upsert(
	ctx context.Context, p domain.Product,
) error {
	const op = "ProductsRepository.Upsert"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	doc := r.toDoc(p)
	_, err := r.store.collection(productsCollection).ReplaceOne(
		ctx,
		bson.M{"_id": doc.ProductID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpsertMany is the batch-write path used for seeding and repairs.
func (r ProductsRepository) UpsertMany(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "ProductsRepository.UpsertMany"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(ps) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(ps))
	for _, p := range ps {
		doc := r.toDoc(p)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ProductID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	_, err := r.store.collection(productsCollection).BulkWrite(ctx, models)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ProductsRepository) Delete(
	ctx context.Context, productID string,
) error {
	const op = "ProductsRepository.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.store.collection(productsCollection).
		DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) Version(ctx context.Context) (uint64, error) {
	const op = "ProductsRepository.Version"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var doc catalogMetaDoc
	err := r.store.collection(catalogMetaCollection).
		FindOne(ctx, bson.M{"_id": catalogMetaID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return uint64(doc.Version), nil
}

func (r ProductsRepository) SetVersion(ctx context.Context, v uint64) error {
	const op = "ProductsRepository.SetVersion"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := r.store.collection(catalogMetaCollection).ReplaceOne(
		ctx,
		bson.M{"_id": catalogMetaID},
		catalogMetaDoc{ID: catalogMetaID, Version: int64(v)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ProductsRepository) toDoc(p domain.Product) productDoc {
	doc := productDoc{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.String(),
		Images:        p.Images,
		Category:      p.Category,
		Featured:      p.Featured,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Discounted() {
		doc.OriginalPrice = p.OriginalPrice.String()
	}
	return doc
}

func (r ProductsRepository) toDomain(d productDoc) (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ProductID:     d.ProductID,
		Name:          d.Name,
		Description:   d.Description,
		Price:         price,
		Images:        d.Images,
		Category:      d.Category,
		Featured:      d.Featured,
		InStock:       d.InStock,
		StockQuantity: d.StockQuantity,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	if d.OriginalPrice != "" {
		orig, err := decimal.NewFromString(d.OriginalPrice)
		if err != nil {
			return domain.Product{}, err
		}
		p.OriginalPrice = orig
	}
	return p, nil
}
