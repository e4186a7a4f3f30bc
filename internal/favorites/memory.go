package favorites

import "sort"

// MemoryStore хранилище избранного в памяти
type MemoryStore struct {
	ids map[string]struct{}
}

// NewMemoryStore создает хранилище с начальными ключами
func NewMemoryStore(ids ...string) *MemoryStore {
	s := &MemoryStore{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// HasFavorite реализует Store
func (s *MemoryStore) HasFavorite(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// AddFavorite реализует Store
func (s *MemoryStore) AddFavorite(id string) {
	s.ids[id] = struct{}{}
}

// RemoveFavorite реализует Store
func (s *MemoryStore) RemoveFavorite(id string) {
	delete(s.ids, id)
}

// List возвращает ключи избранного по алфавиту
func (s *MemoryStore) List() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
