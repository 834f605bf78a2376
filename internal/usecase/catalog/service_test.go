package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/infra/adapter/persistence/memory"
	"magazine-catalog/internal/observability/metrics"
	"magazine-catalog/internal/repository"
	"magazine-catalog/internal/usecase/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *catalog.Service {
	return catalog.NewService(
		memory.NewAuthorRepo(),
		memory.NewMagazineRepo(),
		memory.NewArticleRepo(),
		nil,
	)
}

/* ───────── stub ───────── */

type failingAuthorRepo struct{ err error }

func (f failingAuthorRepo) Get(context.Context, uuid.UUID) (*entity.Author, error) {
	return nil, f.err
}
func (f failingAuthorRepo) List(context.Context) ([]*entity.Author, error) { return nil, f.err }
func (f failingAuthorRepo) Create(context.Context, *entity.Author) error   { return f.err }
func (f failingAuthorRepo) Count(context.Context) (int64, error)           { return 0, f.err }

var _ repository.AuthorRepository = failingAuthorRepo{}

type failingArticleRepo struct {
	repository.ArticleRepository
	err error
}

func (f failingArticleRepo) Create(context.Context, *entity.Article) error { return f.err }

func mustAuthor(t *testing.T, svc *catalog.Service, name string) *entity.Author {
	t.Helper()
	a, err := svc.CreateAuthor(context.Background(), catalog.CreateAuthorInput{Name: name})
	require.NoError(t, err)
	return a
}

func mustMagazine(t *testing.T, svc *catalog.Service, name, category string) *entity.Magazine {
	t.Helper()
	m, err := svc.CreateMagazine(context.Background(), catalog.CreateMagazineInput{Name: name, Category: category})
	require.NoError(t, err)
	return m
}

func mustPublish(t *testing.T, svc *catalog.Service, a *entity.Author, m *entity.Magazine, title string) *entity.Article {
	t.Helper()
	art, err := svc.Publish(context.Background(), catalog.PublishInput{
		AuthorID:   a.ID(),
		MagazineID: m.ID(),
		Title:      title,
	})
	require.NoError(t, err)
	return art
}

/* ───────── tests ───────── */

func TestService_CreateAuthor(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	author := mustAuthor(t, svc, "Carry Bradshaw")

	got, err := svc.GetAuthor(ctx, author.ID())
	require.NoError(t, err)
	assert.Same(t, author, got)
}

func TestService_CreateAuthor_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := catalog.NewService(failingAuthorRepo{err: boom}, memory.NewMagazineRepo(), memory.NewArticleRepo(), nil)

	_, err := svc.CreateAuthor(context.Background(), catalog.CreateAuthorInput{Name: "x"})

	assert.ErrorIs(t, err, boom)
}

func TestService_CreateMagazine_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    catalog.CreateMagazineInput
		wantKind entity.ErrorKind
	}{
		{name: "name too short", input: catalog.CreateMagazineInput{Name: "A", Category: "Tech"}, wantKind: entity.ValueKind},
		{name: "name too long", input: catalog.CreateMagazineInput{Name: "Seventeen Chars!!", Category: "Tech"}, wantKind: entity.ValueKind},
		{name: "empty category", input: catalog.CreateMagazineInput{Name: "Vogue"}, wantKind: entity.ValueKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			before := testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("magazine", "value"))

			m, err := svc.CreateMagazine(context.Background(), tt.input)

			assert.Nil(t, m)
			var vErr *entity.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantKind, vErr.Kind)
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("magazine", "value")))

			n, err := svc.Magazines.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestService_Publish(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")

	art := mustPublish(t, svc, carry, vogue, "How to wear a tutu with style")

	assert.Same(t, carry, art.Author())
	assert.Same(t, vogue, art.Magazine())

	got, err := svc.GetArticle(ctx, art.ID())
	require.NoError(t, err)
	assert.Same(t, art, got)

	articles, err := svc.AuthorArticles(ctx, carry.ID())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Article{art}, articles)

	articles, err = svc.MagazineArticles(ctx, vogue.ID())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Article{art}, articles)
}

func TestService_Publish_Errors(t *testing.T) {
	svc := newService()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")

	tests := []struct {
		name    string
		input   catalog.PublishInput
		wantErr error
	}{
		{
			name:    "unknown author",
			input:   catalog.PublishInput{AuthorID: uuid.New(), MagazineID: vogue.ID(), Title: "t"},
			wantErr: catalog.ErrAuthorNotFound,
		},
		{
			name:    "unknown magazine",
			input:   catalog.PublishInput{AuthorID: carry.ID(), MagazineID: uuid.New(), Title: "t"},
			wantErr: catalog.ErrMagazineNotFound,
		},
		{
			name:    "nil author id",
			input:   catalog.PublishInput{MagazineID: vogue.ID(), Title: "t"},
			wantErr: catalog.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := svc.Publish(context.Background(), tt.input)

			assert.Nil(t, art)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 失敗した公開は何も登録しない
	assert.Empty(t, carry.Articles())
	assert.Empty(t, vogue.Articles())
}

func TestService_RelationshipQueries(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	nathaniel := mustAuthor(t, svc, "Nathaniel Hawthorne")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")
	ad := mustMagazine(t, svc, "AD", "Architecture")

	mustPublish(t, svc, carry, vogue, "How to wear a tutu with style")
	mustPublish(t, svc, carry, vogue, "Dating life in NYC")
	mustPublish(t, svc, nathaniel, ad, "2023 Eccentric Design Trends")
	mustPublish(t, svc, carry, ad, "Carrara Marble is so 2020")
	mustPublish(t, svc, carry, vogue, "Stilettos forever")

	mags, err := svc.AuthorMagazines(ctx, carry.ID())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Magazine{vogue, ad}, mags)

	areas, err := svc.AuthorTopicAreas(ctx, carry.ID())
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Fashion", "Architecture"}, areas); diff != "" {
		t.Errorf("AuthorTopicAreas mismatch (-want +got):\n%s", diff)
	}

	contributors, err := svc.MagazineContributors(ctx, ad.ID())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Author{nathaniel, carry}, contributors)

	titles, err := svc.MagazineArticleTitles(ctx, vogue.ID())
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"How to wear a tutu with style", "Dating life in NYC", "Stilettos forever"}, titles); diff != "" {
		t.Errorf("MagazineArticleTitles mismatch (-want +got):\n%s", diff)
	}

	contributing, err := svc.MagazineContributingAuthors(ctx, vogue.ID())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Author{carry}, contributing)

	contributing, err = svc.MagazineContributingAuthors(ctx, ad.ID())
	require.NoError(t, err)
	assert.Empty(t, contributing)
}

func TestService_NoDataQueriesReturnNil(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")

	areas, err := svc.AuthorTopicAreas(ctx, carry.ID())
	require.NoError(t, err)
	assert.Nil(t, areas)

	titles, err := svc.MagazineArticleTitles(ctx, vogue.ID())
	require.NoError(t, err)
	assert.Nil(t, titles)
}

func TestService_QueriesOnUnknownIDs(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AuthorArticles(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrAuthorNotFound)

	_, err = svc.MagazineContributors(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrMagazineNotFound)

	_, err = svc.GetArticle(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrArticleNotFound)

	_, err = svc.GetMagazine(ctx, uuid.Nil)
	assert.ErrorIs(t, err, catalog.ErrInvalidID)
}

func TestService_RenameAuthor_Immutable(t *testing.T) {
	svc := newService()
	carry := mustAuthor(t, svc, "Carry Bradshaw")

	err := svc.RenameAuthor(context.Background(), carry.ID(), "Samantha Jones")

	assert.ErrorIs(t, err, entity.ErrImmutableAttribute)
	assert.Equal(t, "Carry Bradshaw", carry.Name())

	err = svc.RenameAuthor(context.Background(), uuid.New(), "x")
	assert.ErrorIs(t, err, catalog.ErrAuthorNotFound)
}

func TestService_UpdateMagazine_Immutable(t *testing.T) {
	tests := []struct {
		name     string
		newName  string
		category string
		wantErr  bool
	}{
		{name: "change name", newName: "Elle", wantErr: true},
		{name: "change category", category: "Lifestyle", wantErr: true},
		{name: "no change", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			vogue := mustMagazine(t, svc, "Vogue", "Fashion")

			err := svc.UpdateMagazine(context.Background(), vogue.ID(), tt.newName, tt.category)

			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrImmutableAttribute)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "Vogue", vogue.Name())
			assert.Equal(t, "Fashion", vogue.Category())
		})
	}
}

func TestService_ListMagazines_ByCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")
	ad := mustMagazine(t, svc, "AD", "Architecture")
	gq := mustMagazine(t, svc, "GQ", "Fashion")

	all, err := svc.ListMagazines(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []*entity.Magazine{vogue, ad, gq}, all)

	fashion, err := svc.ListMagazines(ctx, "Fashion")
	require.NoError(t, err)
	assert.Equal(t, []*entity.Magazine{vogue, gq}, fashion)
}

func TestService_StatsAndRefreshMetrics(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")
	mustPublish(t, svc, carry, vogue, "One")
	mustPublish(t, svc, carry, vogue, "Two")

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.Stats{Authors: 1, Magazines: 1, Articles: 2}, st)

	require.NoError(t, svc.RefreshMetrics(ctx))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AuthorsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.ArticlesTotal))
}

func TestService_ConcurrentPublishAndRead(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	carry := mustAuthor(t, svc, "Carry Bradshaw")
	vogue := mustMagazine(t, svc, "Vogue", "Fashion")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Publish(ctx, catalog.PublishInput{AuthorID: carry.ID(), MagazineID: vogue.ID(), Title: "t"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.MagazineContributingAuthors(ctx, vogue.ID())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	articles, err := svc.AuthorArticles(ctx, carry.ID())
	require.NoError(t, err)
	assert.Len(t, articles, n)
	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), st.Articles)
}

func TestService_Publish_StoreFailureLeavesGraphUntouched(t *testing.T) {
	boom := errors.New("disk full")
	svc := catalog.NewService(
		memory.NewAuthorRepo(),
		memory.NewMagazineRepo(),
		failingArticleRepo{ArticleRepository: memory.NewArticleRepo(), err: boom},
		nil,
	)
	author := mustAuthor(t, svc, "Carry Bradshaw")
	magazine := mustMagazine(t, svc, "Vogue", "Fashion")

	art, err := svc.Publish(context.Background(), catalog.PublishInput{
		AuthorID:   author.ID(),
		MagazineID: magazine.ID(),
		Title:      "Lost",
	})

	assert.Nil(t, art)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, author.Articles())
	assert.Empty(t, magazine.Articles())
	assert.Nil(t, author.TopicAreas())

	count, err := svc.Articles.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
