package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdomain "yakalahadi-backend/internal/user/domain"
)

const usersCollection = "users"

// userRepository implements UserRepository on Firestore
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(client *firestore.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var user userdomain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*userdomain.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var users []*userdomain.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user userdomain.User
		if err := snap.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = snap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

// FindNotifiable returns users carrying an FCM token. Location and
// category checks happen in memory at fan-out time.
func (r *userRepository) FindNotifiable(ctx context.Context) ([]*userdomain.User, error) {
	iter := r.client.Collection(usersCollection).Where("fcmToken", "!=", "").Documents(ctx)
	defer iter.Stop()

	var users []*userdomain.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user userdomain.User
		if err := snap.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = snap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

func (r *userRepository) SetDisabled(ctx context.Context, id string, disabled bool) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "disabled", Value: disabled},
	})
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Delete(ctx)
	return err
}
