package application

import (
	"context"
	"testing"

	"github.com/gearshare/service-rental/internal/domain"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	byID map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*userDomain.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	for _, u := range f.byID {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (f *fakeUserRepo) Save(ctx context.Context, u *userDomain.User) error {
	f.byID[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	f.byID[u.ID()] = u
	return nil
}

func seedUser(t *testing.T, users *fakeUserRepo, name string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser(name+"@example.com", name, "", "not-a-real-hash")
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), u))
	return u
}

func validItemRequest() SaveItemRequest {
	return SaveItemRequest{
		Title:            "Canon EOS R6",
		Description:      "full-frame mirrorless",
		Category:         "photography",
		PricePerDayCents: 5000,
		DepositCents:     20000,
		Images:           []string{"https://img.example.com/r6.jpg"},
		Address:          "Portland, OR",
	}
}

func newTestItemService(items *fakeItemRepo, users *fakeUserRepo) *ItemService {
	return NewItemService(items, users, zap.NewNop())
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("denormalizes host profile", func(t *testing.T) {
		items := newFakeItemRepo()
		users := newFakeUserRepo()
		host := seedUser(t, users, "dana")
		svc := newTestItemService(items, users)

		dto, err := svc.CreateItem(ctx, host.ID(), validItemRequest())
		require.NoError(t, err)

		assert.Equal(t, host.ID(), dto.HostID)
		assert.Equal(t, "dana", dto.HostName)
		assert.Equal(t, "USD", dto.Currency)
		assert.False(t, dto.IsPublished)
	})

	t.Run("unknown host", func(t *testing.T) {
		svc := newTestItemService(newFakeItemRepo(), newFakeUserRepo())

		_, err := svc.CreateItem(ctx, uuid.New(), validItemRequest())
		var nfErr *domain.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})

	t.Run("invalid category", func(t *testing.T) {
		items := newFakeItemRepo()
		users := newFakeUserRepo()
		host := seedUser(t, users, "dana")
		svc := newTestItemService(items, users)

		req := validItemRequest()
		req.Category = "boats"
		_, err := svc.CreateItem(ctx, host.ID(), req)
		assert.Error(t, err)
	})
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	items := newFakeItemRepo()
	users := newFakeUserRepo()
	host := seedUser(t, users, "dana")
	svc := newTestItemService(items, users)

	published, err := svc.CreateItem(ctx, host.ID(), validItemRequest())
	require.NoError(t, err)
	_, err = svc.PublishItem(ctx, host.ID(), published.ID)
	require.NoError(t, err)

	draftReq := validItemRequest()
	draftReq.Title = "Backup body"
	draft, err := svc.CreateItem(ctx, host.ID(), draftReq)
	require.NoError(t, err)

	t.Run("public browse sees only published", func(t *testing.T) {
		result, err := svc.ListItems(ctx, ListItemsQuery{})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, published.ID, result[0].ID)
	})

	t.Run("host filter includes drafts", func(t *testing.T) {
		hostID := host.ID()
		result, err := svc.ListItems(ctx, ListItemsQuery{HostID: &hostID})
		require.NoError(t, err)
		require.Len(t, result, 2)

		ids := []uuid.UUID{result[0].ID, result[1].ID}
		assert.Contains(t, ids, published.ID)
		assert.Contains(t, ids, draft.ID)
	})

	t.Run("invalid sort field", func(t *testing.T) {
		_, err := svc.ListItems(ctx, ListItemsQuery{SortBy: "popularity"})
		assert.Error(t, err)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := svc.ListItems(ctx, ListItemsQuery{Limit: -1})
		assert.Error(t, err)
	})
}

func TestItemOwnership(t *testing.T) {
	ctx := context.Background()
	items := newFakeItemRepo()
	users := newFakeUserRepo()
	host := seedUser(t, users, "dana")
	stranger := seedUser(t, users, "sam")
	svc := newTestItemService(items, users)

	dto, err := svc.CreateItem(ctx, host.ID(), validItemRequest())
	require.NoError(t, err)

	t.Run("only owner can update", func(t *testing.T) {
		_, err := svc.UpdateItem(ctx, stranger.ID(), dto.ID, validItemRequest())
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
	})

	t.Run("only owner can publish", func(t *testing.T) {
		_, err := svc.PublishItem(ctx, stranger.ID(), dto.ID)
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
	})

	t.Run("only owner can delete", func(t *testing.T) {
		err := svc.DeleteItem(ctx, stranger.ID(), dto.ID)
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)

		err = svc.DeleteItem(ctx, host.ID(), dto.ID)
		assert.NoError(t, err)
	})
}

func TestSyncHostProfile(t *testing.T) {
	ctx := context.Background()
	items := newFakeItemRepo()
	users := newFakeUserRepo()
	host := seedUser(t, users, "dana")
	svc := newTestItemService(items, users)

	dto, err := svc.CreateItem(ctx, host.ID(), validItemRequest())
	require.NoError(t, err)
	assert.Equal(t, "dana", dto.HostName)

	require.NoError(t, svc.SyncHostProfile(ctx, host.ID(), "Dana K.", "https://img.example.com/new.jpg"))

	got, err := svc.GetItem(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana K.", got.HostName)
	assert.Equal(t, "https://img.example.com/new.jpg", got.HostAvatarURL)
}
