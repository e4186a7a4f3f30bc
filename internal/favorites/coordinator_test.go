package favorites

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

// countingStore считает изменения хранилища
type countingStore struct {
	*MemoryStore
	adds    int
	removes int
}

func newCountingStore(ids ...string) *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore(ids...)}
}

func (s *countingStore) AddFavorite(id string) {
	s.adds++
	s.MemoryStore.AddFavorite(id)
}

func (s *countingStore) RemoveFavorite(id string) {
	s.removes++
	s.MemoryStore.RemoveFavorite(id)
}

type refresherFunc func() error

func (f refresherFunc) Recompute() error { return f() }

func TestRequestAddNew(t *testing.T) {
	store := newCountingStore()
	c := NewCoordinator(store, nil)

	out, err := c.RequestAdd("A")
	if err != nil {
		t.Fatalf("RequestAdd: %v", err)
	}
	if out.Ack == nil || out.Ack.Title != TitleAdded {
		t.Errorf("Ожидалось уведомление %q, получено %+v", TitleAdded, out)
	}
	if out.Request != nil {
		t.Error("Первое добавление не должно требовать подтверждения")
	}
	if !reflect.DeepEqual(store.List(), []string{"A"}) {
		t.Errorf("Избранное = %v", store.List())
	}
	if c.State() != StateIdle {
		t.Error("После добавления координатор должен быть в Idle")
	}
}

func TestScenarioAddTwiceThenRemove(t *testing.T) {
	store := newCountingStore()
	refreshed := 0
	c := NewCoordinator(store, refresherFunc(func() error {
		refreshed++
		return nil
	}))

	if _, err := c.RequestAdd("A"); err != nil {
		t.Fatal(err)
	}

	out, err := c.RequestAdd("A")
	if err != nil {
		t.Fatal(err)
	}
	if out.Ack != nil {
		t.Error("Повторное добавление не должно давать уведомление")
	}
	if out.Request == nil || out.Request.Kind != KindRemove || out.Request.Title != TitleAlreadyAdded {
		t.Fatalf("Ожидался запрос удаления %q, получено %+v", TitleAlreadyAdded, out.Request)
	}
	if out.Request.Message != RemoveConfirmPrompt {
		t.Errorf("Message = %q", out.Request.Message)
	}
	if store.adds != 1 || !reflect.DeepEqual(store.List(), []string{"A"}) {
		t.Errorf("Повторное добавление изменило избранное: adds=%d, %v", store.adds, store.List())
	}
	if c.State() != StateRequested {
		t.Error("Ожидалось состояние Requested")
	}

	res, err := c.Resolve(DecisionRemove)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultRemoved || res.SessionID != "A" {
		t.Errorf("Result = %+v", res)
	}
	if len(store.List()) != 0 {
		t.Errorf("Избранное после удаления = %v", store.List())
	}
	if refreshed != 1 {
		t.Errorf("Ожидался один пересчет, получено %d", refreshed)
	}
	if c.Pending() != nil {
		t.Error("Запрос не закрыт после разрешения")
	}
}

func TestRequestRemoveCancel(t *testing.T) {
	store := newCountingStore("A")
	refreshed := 0
	c := NewCoordinator(store, refresherFunc(func() error {
		refreshed++
		return nil
	}))

	req, err := c.RequestRemove("A", "Remove Keynote?")
	if err != nil {
		t.Fatal(err)
	}
	if req.Title != "Remove Keynote?" || req.Kind != KindRemove {
		t.Errorf("Request = %+v", req)
	}

	res, err := c.Resolve(DecisionCancel)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultCancelled {
		t.Errorf("Result = %+v", res)
	}
	if store.removes != 0 || !store.HasFavorite("A") {
		t.Error("Отмена изменила избранное")
	}
	if refreshed != 0 {
		t.Error("Отмена не должна вызывать пересчет")
	}
}

func TestRequestRemoveDefaultTitle(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), nil)
	req, err := c.RequestRemove("A", "")
	if err != nil {
		t.Fatal(err)
	}
	if req.Title != TitleRemove {
		t.Errorf("Title = %q", req.Title)
	}
}

func TestDismissIsCancel(t *testing.T) {
	store := newCountingStore("A")
	c := NewCoordinator(store, nil)

	if _, err := c.RequestRemove("A", TitleRemove); err != nil {
		t.Fatal(err)
	}
	c.Dismiss()

	if c.State() != StateIdle {
		t.Error("Dismiss должен закрыть запрос")
	}
	if store.removes != 0 {
		t.Error("Dismiss изменил избранное")
	}

	// Без открытого запроса Dismiss ничего не делает
	c.Dismiss()
}

func TestSinglePendingRequest(t *testing.T) {
	store := newCountingStore("A")
	c := NewCoordinator(store, nil)

	if _, err := c.RequestRemove("A", TitleRemove); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RequestRemove("B", TitleRemove); !errors.Is(err, ErrRequestPending) {
		t.Errorf("Ожидалась ErrRequestPending, получено %v", err)
	}
	if _, err := c.RequestAdd("B"); !errors.Is(err, ErrRequestPending) {
		t.Errorf("Ожидалась ErrRequestPending, получено %v", err)
	}
	if store.adds != 0 {
		t.Error("Добавление при открытом запросе изменило избранное")
	}
	if got := c.Pending(); got == nil || got.SessionID != "A" {
		t.Errorf("Открытый запрос изменился: %+v", got)
	}
}

func TestResolveWithoutRequest(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), nil)
	if _, err := c.Resolve(DecisionRemove); !errors.Is(err, ErrNoPendingRequest) {
		t.Errorf("Ожидалась ErrNoPendingRequest, получено %v", err)
	}
}

func TestResolveAtMostOnce(t *testing.T) {
	store := newCountingStore("A")
	c := NewCoordinator(store, nil)

	if _, err := c.RequestRemove("A", TitleRemove); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve(DecisionRemove); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve(DecisionRemove); !errors.Is(err, ErrNoPendingRequest) {
		t.Errorf("Повторное разрешение: %v", err)
	}
	if store.removes != 1 {
		t.Errorf("removes = %d, want 1", store.removes)
	}
}

func TestResolveUnknownDecisionKeepsRequest(t *testing.T) {
	c := NewCoordinator(NewMemoryStore("A"), nil)
	if _, err := c.RequestRemove("A", TitleRemove); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve(Decision(42)); !errors.Is(err, ErrUnknownDecision) {
		t.Errorf("Ожидалась ErrUnknownDecision, получено %v", err)
	}
	if c.State() != StateRequested {
		t.Error("Неизвестное решение не должно закрывать запрос")
	}
}

func TestResolveRefreshError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCoordinator(NewMemoryStore("A"), refresherFunc(func() error { return boom }))

	if _, err := c.RequestRemove("A", TitleRemove); err != nil {
		t.Fatal(err)
	}
	res, err := c.Resolve(DecisionRemove)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.RefreshErr, boom) {
		t.Errorf("RefreshErr = %v", res.RefreshErr)
	}
	if c.IsFavorite("A") {
		t.Error("Доклад должен быть удален, несмотря на ошибку пересчета")
	}
}

func newTestSQLiteStore(t *testing.T, dbPath string) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "favorites.db")

	store := newTestSQLiteStore(t, dbPath)
	store.AddFavorite("A")
	store.AddFavorite("B")
	store.AddFavorite("A")
	store.RemoveFavorite("B")
	if !store.HasFavorite("A") || store.HasFavorite("B") {
		t.Errorf("Состояние в памяти: %v", store.List())
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := newTestSQLiteStore(t, dbPath)
	if got := reopened.List(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("После переоткрытия: %v", got)
	}
}

func TestCoordinatorWithSQLiteStore(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "favorites.db"))
	c := NewCoordinator(store, nil)

	if _, err := c.RequestAdd("A"); err != nil {
		t.Fatal(err)
	}
	out, err := c.RequestAdd("A")
	if err != nil {
		t.Fatal(err)
	}
	if out.Request == nil {
		t.Fatal("Ожидался запрос подтверждения")
	}
	if _, err := c.Resolve(DecisionRemove); err != nil {
		t.Fatal(err)
	}
	if len(store.List()) != 0 {
		t.Errorf("Избранное = %v", store.List())
	}
}
