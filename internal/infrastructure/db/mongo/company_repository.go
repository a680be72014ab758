package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// CompanyRepository persists registered corporate accounts.
type CompanyRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{db: db, col: db.Collection(collectionCompanies)}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionCompanies)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCompanyExists
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *CompanyRepository) findOne(ctx context.Context, filter bson.M) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Company
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cur.Close(ctx)

	var companies []*domain.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return companies, nil
}
