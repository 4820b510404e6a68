package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	PasswordHash   string             `bson:"password_hash"`
	Roles          []string           `bson:"roles"`
	ActiveRole     string             `bson:"active_role"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	BannerPicture  string             `bson:"banner_picture,omitempty"`
	Cart           []string           `bson:"cart"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Roles:          d.Roles,
		ActiveRole:     d.ActiveRole,
		ProfilePicture: d.ProfilePicture,
		BannerPicture:  d.BannerPicture,
		Cart:           d.Cart,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// EnsureIndexes creates the unique constraints registration relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
		ActiveRole:   user.ActiveRole,
		Cart:         []string{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) AddRole(ctx context.Context, id, role string) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"$addToSet": bson.M{"roles": role}})
}

func (r *UserRepository) SetActiveRole(ctx context.Context, id, role string) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{"active_role": role}})
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, id, url string) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{"profile_picture": url}})
}

func (r *UserRepository) SetBannerPicture(ctx context.Context, id, url string) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{"banner_picture": url}})
}

func (r *UserRepository) PushCart(ctx context.Context, id, productID string) error {
	_, err := r.update(ctx, id, bson.M{"$push": bson.M{"cart": productID}})
	return err
}

func (r *UserRepository) PullCart(ctx context.Context, id, productID string) error {
	_, err := r.update(ctx, id, bson.M{"$pull": bson.M{"cart": productID}})
	return err
}

func (r *UserRepository) ClearCart(ctx context.Context, id string) error {
	_, err := r.update(ctx, id, bson.M{"$set": bson.M{"cart": []string{}}})
	return err
}

func (r *UserRepository) UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"username": 1}))
	if err != nil {
		return nil, fmt.Errorf("find usernames: %w", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]string, len(ids))
	for cur.Next(ctx) {
		var doc struct {
			ID       primitive.ObjectID `bson:"_id"`
			Username string             `bson:"username"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode username: %w", err)
		}
		names[doc.ID.Hex()] = doc.Username
	}
	return names, cur.Err()
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// update applies the mutation and returns the post-update document.
func (r *UserRepository) update(ctx context.Context, id string, mutation bson.M) (*domain.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, mutation,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// userObjectID parses a hex ID; malformed IDs behave like missing users.
func userObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrUserNotFound
	}
	return oid, nil
}
