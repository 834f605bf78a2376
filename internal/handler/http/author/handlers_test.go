package author_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/handler/http/author"
	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/infra/adapter/persistence/memory"
	"magazine-catalog/internal/usecase/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── ヘルパー ───────── */

func setup(t *testing.T) (*catalog.Service, *http.ServeMux) {
	t.Helper()
	svc := catalog.NewService(memory.NewAuthorRepo(), memory.NewMagazineRepo(), memory.NewArticleRepo(), nil)
	mux := http.NewServeMux()
	author.Register(mux, svc, nil)
	return svc, mux
}

func seed(t *testing.T, svc *catalog.Service) (*entity.Author, *entity.Magazine, *entity.Magazine) {
	t.Helper()
	ctx := context.Background()
	carry, err := svc.CreateAuthor(ctx, catalog.CreateAuthorInput{Name: "Carry Bradshaw"})
	require.NoError(t, err)
	vogue, err := svc.CreateMagazine(ctx, catalog.CreateMagazineInput{Name: "Vogue", Category: "Fashion"})
	require.NoError(t, err)
	ad, err := svc.CreateMagazine(ctx, catalog.CreateMagazineInput{Name: "AD", Category: "Architecture"})
	require.NoError(t, err)
	return carry, vogue, ad
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

/* ───────── テストケース ───────── */

func TestCreateHandler(t *testing.T) {
	_, mux := setup(t)

	rr := do(mux, http.MethodPost, "/authors", `{"name":"Carry Bradshaw"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got dto.Author
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Carry Bradshaw", got.Name)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "/authors/"+got.ID.String(), rr.Header().Get("Location"))

	rr = do(mux, http.MethodGet, "/authors/"+got.ID.String(), "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateHandler_InvalidBody(t *testing.T) {
	_, mux := setup(t)

	rr := do(mux, http.MethodPost, "/authors", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetHandler_Errors(t *testing.T) {
	_, mux := setup(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "malformed id", path: "/authors/not-a-uuid", want: http.StatusBadRequest},
		{name: "nil uuid", path: "/authors/" + uuid.Nil.String(), want: http.StatusBadRequest},
		{name: "unknown author", path: "/authors/" + uuid.NewString(), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(mux, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestListHandler(t *testing.T) {
	svc, mux := setup(t)

	rr := do(mux, http.MethodGet, "/authors", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[],"pagination":{"total":0,"page":1,"limit":50,"total_pages":1}}`, rr.Body.String())

	carry, _, _ := seed(t, svc)
	rr = do(mux, http.MethodGet, "/authors", "")
	var got dto.Items[dto.Author]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, []dto.Author{{ID: carry.ID(), Name: "Carry Bradshaw"}}, got.Items)
}

func TestAddArticleHandler_AndQueries(t *testing.T) {
	svc, mux := setup(t)
	carry, vogue, ad := seed(t, svc)
	base := "/authors/" + carry.ID().String()

	// 記事がない場合 topic-areas は null
	rr := do(mux, http.MethodGet, base+"/topic-areas", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":null}`, rr.Body.String())

	for _, body := range []string{
		`{"magazine_id":"` + vogue.ID().String() + `","title":"How to wear a tutu with style"}`,
		`{"magazine_id":"` + ad.ID().String() + `","title":"Carrara Marble is so 2020"}`,
		`{"magazine_id":"` + vogue.ID().String() + `","title":"Dating life in NYC"}`,
	} {
		rr = do(mux, http.MethodPost, base+"/articles", body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr = do(mux, http.MethodGet, base+"/articles", "")
	var articles dto.Items[dto.Article]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&articles))
	require.Len(t, articles.Items, 3)
	assert.Equal(t, "Dating life in NYC", articles.Items[2].Title)
	assert.Equal(t, "Vogue", articles.Items[2].MagazineName)

	rr = do(mux, http.MethodGet, base+"/magazines", "")
	var mags dto.Items[dto.Magazine]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&mags))
	assert.Equal(t, []dto.Magazine{dto.FromMagazine(vogue), dto.FromMagazine(ad)}, mags.Items)

	rr = do(mux, http.MethodGet, base+"/topic-areas", "")
	assert.JSONEq(t, `{"items":["Fashion","Architecture"]}`, rr.Body.String())
}

func TestAddArticleHandler_Errors(t *testing.T) {
	svc, mux := setup(t)
	carry, vogue, _ := seed(t, svc)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{
			name: "unknown magazine",
			path: "/authors/" + carry.ID().String() + "/articles",
			body: `{"magazine_id":"` + uuid.NewString() + `","title":"t"}`,
			want: http.StatusNotFound,
		},
		{
			name: "unknown author",
			path: "/authors/" + uuid.NewString() + "/articles",
			body: `{"magazine_id":"` + vogue.ID().String() + `","title":"t"}`,
			want: http.StatusNotFound,
		},
		{
			name: "missing magazine id",
			path: "/authors/" + carry.ID().String() + "/articles",
			body: `{"title":"t"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed magazine id",
			path: "/authors/" + carry.ID().String() + "/articles",
			body: `{"magazine_id":"nope","title":"t"}`,
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(mux, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
	assert.Empty(t, carry.Articles())
}

func TestUpdateHandler_NameIsImmutable(t *testing.T) {
	svc, mux := setup(t)
	carry, _, _ := seed(t, svc)

	rr := do(mux, http.MethodPatch, "/authors/"+carry.ID().String(), `{"name":"Samantha Jones"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Author name is immutable")
	assert.Equal(t, "Carry Bradshaw", carry.Name())
}

func TestRegister_GuardWrapsWrites(t *testing.T) {
	svc := catalog.NewService(memory.NewAuthorRepo(), memory.NewMagazineRepo(), memory.NewArticleRepo(), nil)
	mux := http.NewServeMux()
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	author.Register(mux, svc, deny)

	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPost, "/authors", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusOK, do(mux, http.MethodGet, "/authors", "").Code)
}
