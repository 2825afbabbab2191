package repository

import (
	"context"

	"authcore/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GroupRepository covers the storage shape for groups and permissions.
// Nothing in this service evaluates them.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *entity.Group) error
	ListGroups(ctx context.Context) ([]entity.Group, error)
	CreatePermission(ctx context.Context, permission *entity.Permission) error
	ListPermissions(ctx context.Context) ([]entity.Permission, error)
}

type groupRepository struct {
	groups      *mongo.Collection
	permissions *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) GroupRepository {
	return &groupRepository{
		groups:      db.Collection(ColGroups),
		permissions: db.Collection(ColPermissions),
	}
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *entity.Group) error {
	_, err := r.groups.InsertOne(ctx, group)
	return wrapError(err)
}

func (r *groupRepository) ListGroups(ctx context.Context) ([]entity.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[entity.Group](ctx, r.groups, bson.D{}, opts)
}

func (r *groupRepository) CreatePermission(ctx context.Context, permission *entity.Permission) error {
	_, err := r.permissions.InsertOne(ctx, permission)
	return wrapError(err)
}

func (r *groupRepository) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[entity.Permission](ctx, r.permissions, bson.D{}, opts)
}
