package dao_test

import (
	"context"
	"testing"
	"time"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "book-catalog/pkg/common/errors"
	"book-catalog/pkg/core/book/model"
	"book-catalog/pkg/core/book/repository/dao"
	impl "book-catalog/pkg/core/book/repository/dao/impl"
	"book-catalog/pkg/testutil"
)

func newRepo(t *testing.T) *impl.GormBookRepository {
	t.Helper()
	return impl.NewGormBookRepository(testutil.NewTestDB(t), 2*time.Second)
}

func TestCreateAndQuery(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	libro := model.Libro{Titulo: "Rayuela", Autor: "Julio Cortázar", Precio: 21.3}
	require.NoError(t, repo.Create(ctx, &libro))
	require.NotZero(t, libro.ID)

	got, err := repo.QueryByID(ctx, libro.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rayuela", got.Titulo)
	assert.Equal(t, "Julio Cortázar", got.Autor)
	assert.Equal(t, 21.3, got.Precio)

	_, err = repo.QueryByID(ctx, libro.ID+100)
	assert.ErrorIs(t, err, errs.ErrBookNotFound)
	var hzErr *hzte.Error
	require.ErrorAs(t, err, &hzErr)
	assert.Equal(t, map[string]interface{}{"id": libro.ID + 100}, hzErr.Meta)
}

func TestListFilter(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []model.Libro{
		{Titulo: "Rayuela", Autor: "Julio Cortázar", Precio: 21.3},
		{Titulo: "Pedro Páramo", Autor: "Juan Rulfo", Precio: 16.8},
		{Titulo: "El llano en llamas", Autor: "Juan Rulfo", Precio: 12},
	}))

	all, err := repo.List(ctx, dao.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Less(t, all[0].ID, all[1].ID)

	rulfo, err := repo.List(ctx, dao.ListFilter{Query: "RULFO"})
	require.NoError(t, err)
	assert.Len(t, rulfo, 2)

	byTitle, err := repo.List(ctx, dao.ListFilter{Query: "rayu"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Rayuela", byTitle[0].Titulo)

	none, err := repo.List(ctx, dao.ListFilter{Query: "Borges"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	libro := model.Libro{Titulo: "Rayuela", Autor: "Julio Cortázar", Precio: 21.3}
	require.NoError(t, repo.Create(ctx, &libro))

	changed := model.Libro{ID: libro.ID, Titulo: "Rayuela (ed. 2)", Autor: "Julio Cortázar", Precio: 0}
	require.NoError(t, repo.Update(ctx, &changed))

	got, err := repo.QueryByID(ctx, libro.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rayuela (ed. 2)", got.Titulo)
	assert.Equal(t, 0.0, got.Precio)

	missing := model.Libro{ID: 999, Titulo: "x", Autor: "y"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), errs.ErrBookNotFound)
}

func TestDeleteAndCount(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	libro := model.Libro{Titulo: "Rayuela", Autor: "Julio Cortázar", Precio: 21.3}
	require.NoError(t, repo.Create(ctx, &libro))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Delete(ctx, libro.ID))
	err = repo.Delete(ctx, libro.ID)
	assert.ErrorIs(t, err, errs.ErrBookNotFound)
	var hzErr *hzte.Error
	require.ErrorAs(t, err, &hzErr)
	assert.Equal(t, map[string]interface{}{"id": libro.ID}, hzErr.Meta)

	_, err = repo.QueryByID(ctx, libro.ID)
	assert.ErrorIs(t, err, errs.ErrBookNotFound)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.NoError(t, repo.Ping(ctx))
}
