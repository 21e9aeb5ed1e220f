package storage

// FavoritesKey is the prefs slot holding favorite image URLs.
const FavoritesKey = "favorite_urls"

// FavoritesPersistence stores favorites in the favorite_urls slot.
// It satisfies favorites.Persistence.
type FavoritesPersistence struct {
	s *Storage
}

// NewFavoritesPersistence returns a FavoritesPersistence backed by s.
func NewFavoritesPersistence(s *Storage) *FavoritesPersistence {
	return &FavoritesPersistence{s: s}
}

func (p *FavoritesPersistence) Load() ([]string, error) {
	return p.s.LoadStrings(FavoritesKey)
}

func (p *FavoritesPersistence) Save(urls []string) error {
	return p.s.SaveStrings(FavoritesKey, urls)
}
