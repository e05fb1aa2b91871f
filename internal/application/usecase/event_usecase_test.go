package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// fakeEventRepo implementación en memoria de repository.EventRepository.
type fakeEventRepo struct {
	events map[string]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*entity.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok || e.DeletedAt != nil {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *entity.Event) error {
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, f repository.EventFilter) ([]*entity.Event, int, error) {
	var matched []*entity.Event
	for _, e := range r.events {
		if e.DeletedAt != nil {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.CategoryID != "" && e.CategoryID != f.CategoryID {
			continue
		}
		if !f.From.IsZero() && e.StartsAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.StartsAt.After(f.To) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(e.Venue), strings.ToLower(f.Search)) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartsAt.Before(matched[j].StartsAt) })
	total := len(matched)
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (r *fakeEventRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	if e, ok := r.events[id]; ok {
		e.DeletedAt = &at
		e.UpdatedAt = at
	}
	return nil
}

// fakeCategoryRepo implementación en memoria de repository.CategoryRepository.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

type eventFixture struct {
	uc         *usecase.EventUseCase
	events     *fakeEventRepo
	categories *fakeCategoryRepo
	categoryID string
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	events := newFakeEventRepo()
	categories := newFakeCategoryRepo()
	cat := &entity.Category{ID: "cat-1", Name: "Conciertos", Slug: "conciertos"}
	require.NoError(t, categories.Create(context.Background(), cat))
	return &eventFixture{
		uc:         usecase.NewEventUseCase(events, categories),
		events:     events,
		categories: categories,
		categoryID: cat.ID,
	}
}

var (
	admin   = usecase.Caller{UserID: 1, Role: entity.RoleAdmin}
	creator = usecase.Caller{UserID: 7, Role: entity.RoleUser}
	other   = usecase.Caller{UserID: 8, Role: entity.RoleUser}
	anon    = usecase.Caller{}
)

func (f *eventFixture) create(t *testing.T, caller usecase.Caller, status string) *dto.EventResponse {
	t.Helper()
	starts := time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC)
	out, err := f.uc.Create(context.Background(), caller, dto.CreateEventRequest{
		Title:      "Festival de Jazz",
		CategoryID: f.categoryID,
		Venue:      "Teatro Mayor",
		StartsAt:   starts,
		EndsAt:     starts.Add(3 * time.Hour),
		Price:      decimal.NewFromInt(50000),
		Capacity:   300,
		Status:     status,
	})
	require.NoError(t, err)
	return out
}

func TestEventCreate_PorDefectoEsBorrador(t *testing.T) {
	f := newEventFixture(t)

	out := f.create(t, creator, "")

	assert.Equal(t, entity.EventStatusDraft, out.Status)
	assert.Equal(t, creator.UserID, out.CreatedBy)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(50000)))
}

func TestEventCreate_CategoriaInexistente(t *testing.T) {
	f := newEventFixture(t)

	starts := time.Now().Add(24 * time.Hour)
	_, err := f.uc.Create(context.Background(), creator, dto.CreateEventRequest{
		Title:      "Sin categoría",
		CategoryID: "no-existe",
		StartsAt:   starts,
		EndsAt:     starts.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventCreate_FechasIncoherentes(t *testing.T) {
	f := newEventFixture(t)

	starts := time.Now().Add(24 * time.Hour)
	_, err := f.uc.Create(context.Background(), creator, dto.CreateEventRequest{
		Title:      "Termina antes de empezar",
		CategoryID: f.categoryID,
		StartsAt:   starts,
		EndsAt:     starts.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventGetByID_BorradorInvisibleParaTerceros(t *testing.T) {
	f := newEventFixture(t)
	draft := f.create(t, creator, "")

	// Para anónimos y otros usuarios el borrador "no existe".
	for _, caller := range []usecase.Caller{anon, other} {
		out, err := f.uc.GetByID(context.Background(), caller, draft.ID)
		require.NoError(t, err)
		assert.Nil(t, out)
	}

	// El creador y un admin sí lo ven.
	for _, caller := range []usecase.Caller{creator, admin} {
		out, err := f.uc.GetByID(context.Background(), caller, draft.ID)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, draft.ID, out.ID)
	}
}

func TestEventGetByID_PublicadoVisibleParaTodos(t *testing.T) {
	f := newEventFixture(t)
	published := f.create(t, creator, entity.EventStatusPublished)

	out, err := f.uc.GetByID(context.Background(), anon, published.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, published.ID, out.ID)
}

func TestEventList_NoAdminSoloVePublicados(t *testing.T) {
	f := newEventFixture(t)
	f.create(t, creator, "")
	published := f.create(t, creator, entity.EventStatusPublished)

	out, err := f.uc.List(context.Background(), anon, dto.ListEventsQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, published.ID, out.Items[0].ID)
	assert.Equal(t, 1, out.Page.Total)

	// Aunque pida explícitamente borradores, el filtro se fuerza a publicados.
	out, err = f.uc.List(context.Background(), other, dto.ListEventsQuery{Status: entity.EventStatusDraft})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, published.ID, out.Items[0].ID)
}

func TestEventList_AdminVeTodo(t *testing.T) {
	f := newEventFixture(t)
	f.create(t, creator, "")
	f.create(t, creator, entity.EventStatusPublished)

	out, err := f.uc.List(context.Background(), admin, dto.ListEventsQuery{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Total)
}

func TestEventList_FechaInvalida(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.uc.List(context.Background(), anon, dto.ListEventsQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventUpdate_SoloAdminOCreador(t *testing.T) {
	f := newEventFixture(t)
	event := f.create(t, creator, entity.EventStatusPublished)

	title := "Título nuevo"
	_, err := f.uc.Update(context.Background(), other, event.ID, dto.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Update(context.Background(), creator, event.ID, dto.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, title, out.Title)
}

func TestEventUpdate_EstadoInvalido(t *testing.T) {
	f := newEventFixture(t)
	event := f.create(t, creator, "")

	bad := "archivado"
	_, err := f.uc.Update(context.Background(), creator, event.ID, dto.UpdateEventRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventUpdate_Inexistente(t *testing.T) {
	f := newEventFixture(t)

	title := "da igual"
	out, err := f.uc.Update(context.Background(), admin, "no-existe", dto.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEventDelete_BorradoLogico(t *testing.T) {
	f := newEventFixture(t)
	event := f.create(t, creator, entity.EventStatusPublished)

	require.NoError(t, f.uc.Delete(context.Background(), creator, event.ID))

	// Tras el borrado el evento deja de existir para todos, admin incluido.
	out, err := f.uc.GetByID(context.Background(), admin, event.ID)
	require.NoError(t, err)
	assert.Nil(t, out)

	assert.ErrorIs(t, f.uc.Delete(context.Background(), creator, event.ID), domain.ErrNotFound)
}

func TestEventDelete_TerceroRecibeForbidden(t *testing.T) {
	f := newEventFixture(t)
	event := f.create(t, creator, entity.EventStatusPublished)

	assert.ErrorIs(t, f.uc.Delete(context.Background(), other, event.ID), domain.ErrForbidden)
}
