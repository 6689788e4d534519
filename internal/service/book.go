package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/cache"
	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/repository"
	"bookstore-catalog/internal/slug"
)

const (
	bookKind        = "book"
	bookCachePrefix = "book"
	defaultSort     = "createdAt"
)

// BookStores agrupa las colecciones que necesita BookService.
type BookStores struct {
	Books      BookStore
	Authors    SlugStore[models.Reference]
	Editorials SlugStore[models.Reference]
	Countries  SlugStore[models.Reference]
	Categories SlugStore[models.Reference]
}

type BookService struct {
	stores   BookStores
	cache    *cache.Cache
	pageSize int
	now      func() time.Time
}

// NewBookService crea el servicio. cache puede ser nil.
func NewBookService(stores BookStores, c *cache.Cache, pageSize int) *BookService {
	if pageSize < 1 {
		pageSize = 3
	}
	return &BookService{stores: stores, cache: c, pageSize: pageSize, now: time.Now}
}

// reference es una búsqueda pendiente de un campo del cuerpo.
type reference struct {
	field  string
	value  string
	store  SlugStore[models.Reference]
	result *models.Reference
}

// resolve busca todas las referencias antes de reportar la primera que falta.
// Un error del store corta de inmediato.
func (s *BookService) resolve(ctx context.Context, refs ...*reference) error {
	var missing error
	for _, ref := range refs {
		found, err := ref.store.FindBySlug(ctx, slug.Normalize(ref.value), true)
		if errors.Is(err, repository.ErrNotFound) {
			if missing == nil {
				missing = &ReferenceError{Entity: ref.field, Field: ref.field, Value: ref.value}
			}
			continue
		}
		if err != nil {
			return err
		}
		ref.result = found
	}
	return missing
}

// Create resuelve editorial, autor, país y categoría y guarda el libro como Active.
func (s *BookService) Create(ctx context.Context, in models.BookInput) (*models.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	editorial := &reference{field: "editorial", value: in.Editorial, store: s.stores.Editorials}
	author := &reference{field: "author", value: in.Author, store: s.stores.Authors}
	country := &reference{field: "country", value: in.Country, store: s.stores.Countries}
	category := &reference{field: "category", value: in.Category, store: s.stores.Categories}
	if err := s.resolve(ctx, editorial, author, country, category); err != nil {
		return nil, err
	}

	now := s.now()
	book := &models.Book{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		ISBN:        in.ISBN,
		Edition:     in.Edition,
		Pages:       in.Pages,
		Editorial:   editorial.result.ID,
		Author:      author.result.ID,
		Country:     country.result.ID,
		Category:    category.result.ID,
		Slug:        slug.Book(in.Title, editorial.result.Name),
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stores.Books.Insert(ctx, book); err != nil {
		return nil, duplicate(err, bookKind, book.Slug)
	}

	s.cache.DeleteByPrefix(bookCachePrefix)
	return book, nil
}

// Update mezcla los campos enviados y recalcula el slug con el título y la editorial vigente.
func (s *BookService) Update(ctx context.Context, slugParam string, in models.BookUpdate) (*models.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	key := slug.Normalize(slugParam)
	book, err := s.stores.Books.FindBySlug(ctx, key, true)
	if err != nil {
		return nil, notFound(err, bookKind, key)
	}

	var editorial, author, country, category *reference
	var pending []*reference
	if in.Editorial != nil {
		editorial = &reference{field: "editorial", value: *in.Editorial, store: s.stores.Editorials}
		pending = append(pending, editorial)
	}
	if in.Author != nil {
		author = &reference{field: "author", value: *in.Author, store: s.stores.Authors}
		pending = append(pending, author)
	}
	if in.Country != nil {
		country = &reference{field: "country", value: *in.Country, store: s.stores.Countries}
		pending = append(pending, country)
	}
	if in.Category != nil {
		category = &reference{field: "category", value: *in.Category, store: s.stores.Categories}
		pending = append(pending, category)
	}
	if err := s.resolve(ctx, pending...); err != nil {
		return nil, err
	}

	editorialName, err := s.editorialName(ctx, book, editorial)
	if err != nil {
		return nil, err
	}

	book.Title = in.Title
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.Price != nil {
		book.Price = *in.Price
	}
	if in.ISBN != nil {
		book.ISBN = *in.ISBN
	}
	if in.Edition != nil {
		book.Edition = *in.Edition
	}
	if in.Pages != nil {
		book.Pages = *in.Pages
	}
	if editorial != nil {
		book.Editorial = editorial.result.ID
	}
	if author != nil {
		book.Author = author.result.ID
	}
	if country != nil {
		book.Country = country.result.ID
	}
	if category != nil {
		book.Category = category.result.ID
	}
	book.Slug = slug.Book(book.Title, editorialName)
	book.UpdatedAt = s.now()

	if err := s.stores.Books.Replace(ctx, book.ID, book); err != nil {
		return nil, duplicate(notFound(err, bookKind, key), bookKind, book.Slug)
	}

	s.cache.DeleteByPrefix(bookCachePrefix)
	return book, nil
}

// editorialName devuelve el nombre de la editorial nueva o, si no vino, el de la anterior.
func (s *BookService) editorialName(ctx context.Context, book *models.Book, editorial *reference) (string, error) {
	if editorial != nil {
		return editorial.result.Name, nil
	}
	previous, err := s.stores.Editorials.FindByID(ctx, book.Editorial)
	if errors.Is(err, repository.ErrNotFound) {
		return "", &ReferenceError{Entity: "editorial", Field: "editorial", Value: book.Editorial.Hex()}
	}
	if err != nil {
		return "", err
	}
	return previous.Name, nil
}

// Read devuelve un libro activo con la categoría expandida, pasando por el caché.
func (s *BookService) Read(ctx context.Context, slugParam string) (*models.BookDetail, error) {
	key := slug.Normalize(slugParam)
	cacheKey := bookCachePrefix + ":" + key

	var cached models.BookDetail
	if found, err := s.cache.Unmarshal(cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	book, err := s.stores.Books.FindActiveDetail(ctx, key)
	if err != nil {
		return nil, notFound(err, bookKind, key)
	}
	_ = s.cache.Marshal(cacheKey, book)
	return book, nil
}

// ListRecent devuelve hasta count libros activos, los más nuevos primero. 0 no limita.
func (s *BookService) ListRecent(ctx context.Context, count int64) ([]models.Book, error) {
	if count < 0 {
		return nil, &ValidationError{Field: "count", Message: "count must be a non-negative integer"}
	}
	return s.stores.Books.ListRecent(ctx, count)
}

func (s *BookService) Count(ctx context.Context) (int64, error) {
	return s.stores.Books.CountActive(ctx)
}

// Page devuelve la página pedida con tamaño fijo. No informa el total.
func (s *BookService) Page(ctx context.Context, req models.PageRequest) ([]models.BookDetail, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if req.Sort == "" {
		req.Sort = defaultSort
	}
	if req.Order == "" {
		req.Order = "desc"
	}
	if req.Page < 1 {
		req.Page = 1
	}
	order := -1
	if req.Order == "asc" {
		order = 1
	}

	cacheKey := fmt.Sprintf("%ss:page:%s:%s:%d", bookCachePrefix, req.Sort, req.Order, req.Page)
	var cached []models.BookDetail
	if found, err := s.cache.Unmarshal(cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	skip := int64(req.Page-1) * int64(s.pageSize)
	books, err := s.stores.Books.Page(ctx, req.Sort, order, skip, int64(s.pageSize))
	if err != nil {
		return nil, err
	}
	_ = s.cache.Marshal(cacheKey, books)
	return books, nil
}

// Remove marca el libro como Inactive. Repetirlo devuelve el mismo estado.
func (s *BookService) Remove(ctx context.Context, slugParam string) (*models.Book, error) {
	key := slug.Normalize(slugParam)
	book, err := s.stores.Books.SetStatus(ctx, key, models.StatusInactive)
	if err != nil {
		return nil, notFound(err, bookKind, key)
	}

	s.cache.DeleteByPrefix(bookCachePrefix)
	return book, nil
}
