package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/event"
	repo "github.com/danuartha/go-commerce-ddd/internal/domain/repository"
	"github.com/danuartha/go-commerce-ddd/pkg/helpers"
)

const userCacheTTL = 10 * time.Minute

func userCacheKey(id entity.UserID) string {
	return "user:profile:" + id.String()
}

// UserService orchestrates user aggregate lifecycle: validation through the
// aggregate, persistence through the repository, then event publication.
// The repository write is the durability boundary; a failed publish is
// surfaced but the committed write stands.
type UserService struct {
	Repo         repo.UserRepository
	Publisher    event.Publisher
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(r repo.UserRepository, pub event.Publisher, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         r,
		Publisher:    pub,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// CreateUser registers a new user. Fails with entity.ErrConflict when the
// email is already taken and entity.ErrInvalidArgument on bad input; neither
// failure writes anything.
func (s *UserService) CreateUser(ctx context.Context, emailRaw, firstName, lastName string) (*entity.User, error) {
	email, err := entity.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", entity.ErrConflict, email)
	}

	u, err := entity.NewUser(email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	saved, err := s.Repo.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, saved)
	_ = s.indexUser(ctx, saved)

	ev := event.UserCreated{
		ID:         saved.ID,
		Email:      saved.Email,
		FirstName:  saved.FirstName,
		LastName:   saved.LastName,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logError("publish user.created failed", err, logrus.Fields{"user_id": saved.ID})
		return saved, fmt.Errorf("user persisted but event publish failed: %w", err)
	}
	return saved, nil
}

// UpdateUser applies a partial profile update. Nil fields keep the stored
// value; the aggregate rejects blank names.
func (s *UserService) UpdateUser(ctx context.Context, id entity.UserID, firstName, lastName *string) (*entity.User, error) {
	current, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newFirst := current.FirstName
	if firstName != nil {
		newFirst = *firstName
	}
	newLast := current.LastName
	if lastName != nil {
		newLast = *lastName
	}

	updated, err := current.UpdateProfile(newFirst, newLast)
	if err != nil {
		return nil, err
	}

	saved, err := s.Repo.Save(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, saved)
	_ = s.indexUser(ctx, saved)

	ev := event.UserUpdated{
		ID:         saved.ID,
		FirstName:  saved.FirstName,
		LastName:   saved.LastName,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logError("publish user.updated failed", err, logrus.Fields{"user_id": saved.ID})
		return saved, fmt.Errorf("user persisted but event publish failed: %w", err)
	}
	return saved, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id entity.UserID) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: user %s", entity.ErrNotFound, id)
	}

	s.evictUser(ctx, id)
	_ = s.removeUserIndex(ctx, id)

	ev := event.UserDeleted{ID: id, OccurredAt: time.Now().UTC()}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logError("publish user.deleted failed", err, logrus.Fields{"user_id": id})
		return fmt.Errorf("user deleted but event publish failed: %w", err)
	}
	return nil
}

// GetUser is a pure lookup with a read-through Redis cache.
func (s *UserService) GetUser(ctx context.Context, id entity.UserID) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, userCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheUser(ctx, u)
	return u, nil
}

// GetUserByEmail is a pure lookup, no event and no cache.
func (s *UserService) GetUserByEmail(ctx context.Context, emailRaw string) (*entity.User, error) {
	email, err := entity.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByEmail(ctx, email)
}

// GetAllUsers returns one zero-indexed page plus the total population count.
func (s *UserService) GetAllUsers(ctx context.Context, page, size int) ([]entity.User, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	users, err := s.Repo.FindAll(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SearchUsers performs a multi_match search over email and name fields.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *UserService) cacheUser(ctx context.Context, u *entity.User) {
	if s.Redis == nil || u == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, userCacheKey(u.ID), u, userCacheTTL); err != nil {
		s.logError("cache user failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (s *UserService) evictUser(ctx context.Context, id entity.UserID) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, userCacheKey(id)); err != nil {
		s.logError("evict user cache failed", err, logrus.Fields{"user_id": id})
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logError("es index failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *UserService) removeUserIndex(ctx context.Context, id entity.UserID) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id.String()}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logError("es delete failed", err, logrus.Fields{"user_id": id})
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

func (s *UserService) logError(msg string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}
