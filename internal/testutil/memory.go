// Package testutil tiene stores en memoria que cumplen los contratos de service para tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/repository"
)

// Fields expone los campos comunes de un documento identificado por slug.
type Fields[T any] struct {
	ID     func(*T) primitive.ObjectID
	Slug   func(*T) string
	Status func(*T) *models.Status
}

// MemoryStore guarda documentos en orden de inserción y respeta la unicidad del slug.
// Si Err no es nil todas las operaciones lo devuelven.
// BeforeReplace, si está, corre al entrar en Replace y permite intercalar otra escritura.
type MemoryStore[T any] struct {
	mu            sync.Mutex
	docs          []T
	fields        Fields[T]
	Inserts       int
	Err           error
	BeforeReplace func()
}

func NewMemoryStore[T any](fields Fields[T]) *MemoryStore[T] {
	return &MemoryStore[T]{fields: fields}
}

func (s *MemoryStore[T]) Insert(_ context.Context, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.docs {
		if s.fields.Slug(&s.docs[i]) == s.fields.Slug(doc) {
			return repository.ErrDuplicate
		}
	}
	s.docs = append(s.docs, *doc)
	s.Inserts++
	return nil
}

func (s *MemoryStore[T]) FindBySlug(_ context.Context, slug string, activeOnly bool) (*T, error) {
	return s.find(func(doc *T) bool {
		return s.fields.Slug(doc) == slug && (!activeOnly || *s.fields.Status(doc) == models.StatusActive)
	})
}

func (s *MemoryStore[T]) FindByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	return s.find(func(doc *T) bool { return s.fields.ID(doc) == id })
}

func (s *MemoryStore[T]) find(match func(*T) bool) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.docs {
		if match(&s.docs[i]) {
			doc := s.docs[i]
			return &doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListActive devuelve los activos, el último insertado primero.
func (s *MemoryStore[T]) ListActive(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]T, 0, len(s.docs))
	for i := len(s.docs) - 1; i >= 0; i-- {
		if *s.fields.Status(&s.docs[i]) == models.StatusActive {
			out = append(out, s.docs[i])
		}
	}
	return out, nil
}

// Replace solo pisa documentos que siguen Active.
func (s *MemoryStore[T]) Replace(_ context.Context, id primitive.ObjectID, doc *T) error {
	if s.BeforeReplace != nil {
		s.BeforeReplace()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	idx := -1
	for i := range s.docs {
		if s.fields.ID(&s.docs[i]) == id {
			if *s.fields.Status(&s.docs[i]) == models.StatusActive {
				idx = i
			}
			continue
		}
		if s.fields.Slug(&s.docs[i]) == s.fields.Slug(doc) {
			return repository.ErrDuplicate
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	s.docs[idx] = *doc
	return nil
}

func (s *MemoryStore[T]) SetStatus(_ context.Context, slug string, status models.Status) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.docs {
		if s.fields.Slug(&s.docs[i]) == slug {
			*s.fields.Status(&s.docs[i]) = status
			doc := s.docs[i]
			return &doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Len cuenta todos los documentos guardados, activos o no.
func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *MemoryStore[T]) all() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.docs...)
}

// NewReferenceStore crea un store en memoria para autores, editoriales, países o categorías.
func NewReferenceStore() *MemoryStore[models.Reference] {
	return NewMemoryStore(Fields[models.Reference]{
		ID:     func(r *models.Reference) primitive.ObjectID { return r.ID },
		Slug:   func(r *models.Reference) string { return r.Slug },
		Status: func(r *models.Reference) *models.Status { return &r.Status },
	})
}

func NewSubcategoryStore() *MemoryStore[models.Subcategory] {
	return NewMemoryStore(Fields[models.Subcategory]{
		ID:     func(r *models.Subcategory) primitive.ObjectID { return r.ID },
		Slug:   func(r *models.Subcategory) string { return r.Slug },
		Status: func(r *models.Subcategory) *models.Status { return &r.Status },
	})
}

// BookMemoryStore agrega las consultas propias de libros. Categories se usa para expandir la categoría.
type BookMemoryStore struct {
	*MemoryStore[models.Book]
	Categories *MemoryStore[models.Reference]
}

func NewBookStore(categories *MemoryStore[models.Reference]) *BookMemoryStore {
	return &BookMemoryStore{
		MemoryStore: NewMemoryStore(Fields[models.Book]{
			ID:     func(b *models.Book) primitive.ObjectID { return b.ID },
			Slug:   func(b *models.Book) string { return b.Slug },
			Status: func(b *models.Book) *models.Status { return &b.Status },
		}),
		Categories: categories,
	}
}

func (s *BookMemoryStore) active() []models.Book {
	var out []models.Book
	for _, b := range s.all() {
		if b.Status == models.StatusActive {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookMemoryStore) ListRecent(_ context.Context, limit int64) ([]models.Book, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	books := s.active()
	sort.SliceStable(books, func(i, j int) bool { return books[i].CreatedAt.After(books[j].CreatedAt) })
	if limit > 0 && int64(len(books)) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (s *BookMemoryStore) FindActiveDetail(ctx context.Context, slug string) (*models.BookDetail, error) {
	book, err := s.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	detail := s.detail(ctx, *book)
	return &detail, nil
}

func (s *BookMemoryStore) Page(ctx context.Context, sortField string, order int, skip, limit int64) ([]models.BookDetail, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	books := s.active()
	sort.SliceStable(books, func(i, j int) bool {
		c := compareBooks(books[i], books[j], sortField)
		if order < 0 {
			return c > 0
		}
		return c < 0
	})

	out := make([]models.BookDetail, 0)
	for i := skip; i < int64(len(books)) && i < skip+limit; i++ {
		out = append(out, s.detail(ctx, books[i]))
	}
	return out, nil
}

func (s *BookMemoryStore) CountActive(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.active())), nil
}

func (s *BookMemoryStore) detail(ctx context.Context, book models.Book) models.BookDetail {
	detail := models.BookDetail{Book: book}
	if s.Categories != nil {
		if category, err := s.Categories.FindByID(ctx, book.Category); err == nil {
			detail.Category = category
		}
	}
	return detail
}

func compareBooks(a, b models.Book, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "price":
		return compareInt(a.Price, b.Price)
	case "pages":
		return compareInt(int64(a.Pages), int64(b.Pages))
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// UserMemoryStore guarda usuarios por email.
type UserMemoryStore struct {
	mu    sync.Mutex
	users map[string]models.User
	Err   error
}

func NewUserStore(users ...models.User) *UserMemoryStore {
	s := &UserMemoryStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *UserMemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserMemoryStore) UpsertProfile(_ context.Context, email, name, picture string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[email]
	if !ok {
		u = models.User{
			ID:       primitive.NewObjectID(),
			Email:    email,
			Name:     name,
			Role:     models.RoleSubscriber,
			Cart:     []models.CartItem{},
			Wishlist: []primitive.ObjectID{},
		}
	}
	u.Picture = picture
	s.users[email] = u
	return &u, nil
}
