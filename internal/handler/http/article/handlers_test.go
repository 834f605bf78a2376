package article_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"magazine-catalog/internal/handler/http/article"
	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/infra/adapter/persistence/memory"
	"magazine-catalog/internal/usecase/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *catalog.Service
	mux        *http.ServeMux
	authorID   string
	magazineID string
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	svc := catalog.NewService(memory.NewAuthorRepo(), memory.NewMagazineRepo(), memory.NewArticleRepo(), nil)
	a, err := svc.CreateAuthor(ctx, catalog.CreateAuthorInput{Name: "Nathaniel Hawthorne"})
	require.NoError(t, err)
	m, err := svc.CreateMagazine(ctx, catalog.CreateMagazineInput{Name: "AD", Category: "Architecture"})
	require.NoError(t, err)

	mux := http.NewServeMux()
	article.Register(mux, svc, nil)
	return fixture{svc: svc, mux: mux, authorID: a.ID().String(), magazineID: m.ID().String()}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func TestCreateHandler_Success(t *testing.T) {
	f := setup(t)
	body := fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":"2023 Eccentric Design Trends"}`, f.authorID, f.magazineID)

	rr := f.do(http.MethodPost, "/articles", body)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created dto.Article
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, "2023 Eccentric Design Trends", created.Title)
	assert.Equal(t, "Nathaniel Hawthorne", created.AuthorName)
	assert.Equal(t, "Architecture", created.Category)

	rr = f.do(http.MethodGet, "/articles/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.Article
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, created, got)
}

func TestCreateHandler_Errors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "invalid json", body: `{`, want: http.StatusBadRequest},
		{name: "title not a string", body: fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":7}`, f.authorID, f.magazineID), want: http.StatusBadRequest},
		{name: "missing author", body: fmt.Sprintf(`{"magazine_id":%q,"title":"t"}`, f.magazineID), want: http.StatusBadRequest},
		{name: "malformed author id", body: fmt.Sprintf(`{"author_id":"x","magazine_id":%q,"title":"t"}`, f.magazineID), want: http.StatusBadRequest},
		{name: "unknown author", body: fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":"t"}`, uuid.NewString(), f.magazineID), want: http.StatusNotFound},
		{name: "unknown magazine", body: fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":"t"}`, f.authorID, uuid.NewString()), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(http.MethodPost, "/articles", tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}

	n, err := f.svc.Articles.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListHandler(t *testing.T) {
	f := setup(t)
	assert.JSONEq(t, `{"items":[],"pagination":{"total":0,"page":1,"limit":50,"total_pages":1}}`, f.do(http.MethodGet, "/articles", "").Body.String())

	for _, title := range []string{"First", "Second"} {
		body := fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":%q}`, f.authorID, f.magazineID, title)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/articles", body).Code)
	}

	rr := f.do(http.MethodGet, "/articles", "")
	var got dto.Items[dto.Article]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "First", got.Items[0].Title)
	assert.Equal(t, "Second", got.Items[1].Title)
}

func TestListHandler_Pagination(t *testing.T) {
	f := setup(t)
	for _, title := range []string{"One", "Two", "Three"} {
		body := fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":%q}`, f.authorID, f.magazineID, title)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/articles", body).Code)
	}

	rr := f.do(http.MethodGet, "/articles?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.Items[dto.Article]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Three", got.Items[0].Title)
	require.NotNil(t, got.Pagination)
	assert.Equal(t, int64(3), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/articles?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/articles?page=abc", "").Code)
}

func TestListHandler_HugePage(t *testing.T) {
	f := setup(t)
	body := fmt.Sprintf(`{"author_id":%q,"magazine_id":%q,"title":"Only"}`, f.authorID, f.magazineID)
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/articles", body).Code)

	rr := f.do(http.MethodGet, "/articles?page=9223372036854775807&limit=2", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "page is too large")

	// limit=1 ではオフセットが収まるので空ページ
	rr = f.do(http.MethodGet, "/articles?page=9223372036854775807&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.Items[dto.Article]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Empty(t, got.Items)
}

func TestGetHandler_Errors(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/articles/123", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/articles/"+uuid.NewString(), "").Code)
}
