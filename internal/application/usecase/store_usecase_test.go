package usecase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

type memStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*entity.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: map[string]*entity.Store{}}
}

func (r *memStoreRepo) Create(s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.stores {
		if existing.Code == s.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(id string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStoreRepo) GetByCode(code string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStoreRepo) Update(s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.stores[s.ID]; ok {
		cp := *s
		cp.Code = existing.Code // inmutable
		r.stores[s.ID] = &cp
	}
	return nil
}

func (r *memStoreRepo) SetStatus(id, status, updatedBy string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *memStoreRepo) List(filter repository.StoreFilter) ([]*entity.Store, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Store
	for _, s := range r.stores {
		cp := *s
		list = append(list, &cp)
	}
	return list, int64(len(list)), nil
}

func storeReq() dto.CreateStoreRequest {
	return dto.CreateStoreRequest{
		Code:    "T-01",
		Name:    "Tienda Centro",
		Address: "Calle 10 #5-20",
		Phone:   "3001234567",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StoreUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreCreate_YConsulta(t *testing.T) {
	uc := usecase.NewStoreUseCase(newMemStoreRepo())

	out, err := uc.Create(storeReq(), actorID)
	require.NoError(t, err)
	assert.Equal(t, "T-01", out.Code)
	assert.Equal(t, entity.StatusActive, out.Status)

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

// Código repetido → conflicto.
func TestStoreCreate_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewStoreUseCase(newMemStoreRepo())

	_, err := uc.Create(storeReq(), actorID)
	require.NoError(t, err)

	_, err = uc.Create(storeReq(), actorID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Update no toca el código.
func TestStoreUpdate_CodigoInmutable(t *testing.T) {
	repo := newMemStoreRepo()
	uc := usecase.NewStoreUseCase(repo)
	created, err := uc.Create(storeReq(), actorID)
	require.NoError(t, err)

	newName := "Tienda Norte"
	out, err := uc.Update(created.ID, dto.UpdateStoreRequest{Name: &newName}, actorID)
	require.NoError(t, err)
	assert.Equal(t, newName, out.Name)
	assert.Equal(t, "T-01", out.Code)
}

func TestStoreUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewStoreUseCase(newMemStoreRepo())
	name := "x"
	_, err := uc.Update("no-existe", dto.UpdateStoreRequest{Name: &name}, actorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Delete es lógico: la tienda queda INACTIVE y sigue consultable.
func TestStoreDelete_EsBorradoLogico(t *testing.T) {
	repo := newMemStoreRepo()
	uc := usecase.NewStoreUseCase(repo)
	created, err := uc.Create(storeReq(), actorID)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID, actorID))

	s, _ := repo.GetByID(created.ID)
	require.NotNil(t, s)
	assert.Equal(t, entity.StatusInactive, s.Status)
}
