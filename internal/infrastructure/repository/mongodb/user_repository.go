package mongodb

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"accounthub/internal/domain/errs"
	userdomain "accounthub/internal/domain/user"
	"accounthub/internal/domain/uuid"
)

// UserRepository implements user.Repository backed by a MongoDB collection.
type UserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// UserRepoOption configures UserRepository.
type UserRepoOption func(*UserRepository)

// WithUserRepoLogger sets the logger for the user repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *UserRepository) {
		r.logger = logger
	}
}

// NewUserRepository creates a user repository over the given collection.
func NewUserRepository(collection *mongo.Collection, opts ...UserRepoOption) *UserRepository {
	r := &UserRepository{
		collection: collection,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts a new user record. The unique index on username turns a
// duplicate insert into errs.ErrAlreadyExists, so concurrent sign-ups with
// the same username cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *userdomain.User) error {
	if user == nil || user.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := userToDocument(user)
	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			r.logger.ErrorContext(ctx, "failed to create user",
				slog.String("user_id", user.ID().String()),
				slog.String("error", err.Error()),
			)
		}
		return HandleMongoError(err, "user")
	}
	return nil
}

// FindByID finds a user by their store-assigned id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": id.String()}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// FindByUsername finds a user by their unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	if username == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"username": username}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// ExistsByUsername reports whether a record with the username exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, errs.ErrInvalidInput
	}

	filter := bson.M{"username": username}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, HandleMongoError(err, "user")
	}

	return count > 0, nil
}

// Update persists the current state of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *userdomain.User) error {
	if user == nil || user.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := userToDocument(user)
	filter := bson.M{"user_id": user.ID().String()}
	update := bson.M{"$set": doc}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update user",
			slog.String("user_id", user.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "user")
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SearchByName returns all users whose first or last name contains the
// filter as a case-sensitive substring. An empty filter matches everyone.
// The filter is quoted so regex metacharacters match literally.
func (r *UserRepository) SearchByName(ctx context.Context, filter string) ([]*userdomain.User, error) {
	pattern := regexp.QuoteMeta(filter)
	query := bson.M{
		"$or": bson.A{
			bson.M{"first_name": bson.M{"$regex": pattern}},
			bson.M{"last_name": bson.M{"$regex": pattern}},
		},
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to search users",
			slog.String("error", err.Error()),
		)
		return nil, HandleMongoError(err, "users")
	}
	defer cursor.Close(ctx)

	var users []*userdomain.User
	for cursor.Next(ctx) {
		var doc userDocument
		if decodeErr := cursor.Decode(&doc); decodeErr != nil {
			return nil, HandleMongoError(decodeErr, "users")
		}
		u, convErr := documentToUser(&doc)
		if convErr != nil {
			return nil, convErr
		}
		users = append(users, u)
	}

	if cursorErr := cursor.Err(); cursorErr != nil {
		return nil, HandleMongoError(cursorErr, "users")
	}

	return users, nil
}

// userDocument is the MongoDB document shape for a user record.
type userDocument struct {
	UserID       string    `bson:"user_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func userToDocument(user *userdomain.User) userDocument {
	return userDocument{
		UserID:       user.ID().String(),
		Username:     user.Username(),
		PasswordHash: user.PasswordHash(),
		FirstName:    user.FirstName(),
		LastName:     user.LastName(),
		CreatedAt:    user.CreatedAt(),
		UpdatedAt:    user.UpdatedAt(),
	}
}

func documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		id,
		doc.Username,
		doc.PasswordHash,
		doc.FirstName,
		doc.LastName,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
