package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"marketAPI/internal/models"
	"marketAPI/internal/repository"
	"marketAPI/internal/storage"
)

// RandomLimit is the number of products on the front page sample.
const RandomLimit = 20

// replaceMarker prefixes an image URL that the client wants swapped out.
const replaceMarker = "!"

// ImageUpload is one uploaded file. Open is called once, right before the
// file is sent to storage.
type ImageUpload struct {
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type CreateProductRequest struct {
	UserID      int
	CategoryID  int
	Title       string
	Description string
	Price       int
	Location    string
	Images      []ImageUpload
}

// UpdateProductRequest replaces every editable field of a product.
// UpdatedImages is the client's view of the image slots: plain URLs are
// kept, "!"-prefixed URLs and empty strings are slots free for Images.
type UpdateProductRequest struct {
	ProductID     int
	UserID        int
	CategoryID    int
	Title         string
	Description   string
	Price         int
	Location      string
	UpdatedImages []string
	Images        []ImageUpload
}

type ProductService interface {
	Random(ctx context.Context) ([]models.ProductSummary, error)
	List(ctx context.Context, req PageRequest) (*models.ProductPage, error)
	ListByCategory(ctx context.Context, categoryID int, req PageRequest) (*models.ProductPage, error)
	Search(ctx context.Context, query string, categoryID *int, req PageRequest) (*models.ProductPage, error)
	ListByUser(ctx context.Context, userID int, req PageRequest) (*models.ProductPage, error)
	GetOne(ctx context.Context, productID int, viewer models.Viewer) (*models.ProductDetail, error)
	CheckAuthor(ctx context.Context, productID, userID int) error
	Create(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, req UpdateProductRequest) error
	Delete(ctx context.Context, productID, userID int) error
}

type productService struct {
	productRepo repository.ProductRepository
	messageRepo repository.MessageRepository
	storage     storage.Storage
}

func NewProductService(productRepo repository.ProductRepository, messageRepo repository.MessageRepository, storage storage.Storage) ProductService {
	return &productService{
		productRepo: productRepo,
		messageRepo: messageRepo,
		storage:     storage,
	}
}

func (p *productService) Random(ctx context.Context) ([]models.ProductSummary, error) {
	return p.productRepo.Random(ctx, RandomLimit)
}

func (p *productService) List(ctx context.Context, req PageRequest) (*models.ProductPage, error) {
	return p.page(ctx, repository.ProductFilter{}, req)
}

func (p *productService) ListByCategory(ctx context.Context, categoryID int, req PageRequest) (*models.ProductPage, error) {
	return p.page(ctx, repository.ProductFilter{CategoryID: &categoryID}, req)
}

func (p *productService) Search(ctx context.Context, query string, categoryID *int, req PageRequest) (*models.ProductPage, error) {
	return p.page(ctx, repository.ProductFilter{Query: &query, CategoryID: categoryID}, req)
}

func (p *productService) ListByUser(ctx context.Context, userID int, req PageRequest) (*models.ProductPage, error) {
	return p.page(ctx, repository.ProductFilter{UserID: &userID}, req)
}

func (p *productService) page(ctx context.Context, filter repository.ProductFilter, req PageRequest) (*models.ProductPage, error) {
	products, err := p.productRepo.List(ctx, filter, models.PageSize, req.offset())
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.ProductSummary{}
	}

	count, err := resolveCount(ctx, req, len(products), func(ctx context.Context) (int, error) {
		return p.productRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	return &models.ProductPage{Products: products, Count: count}, nil
}

// GetOne returns the product with the messages the viewer may read: none
// for anonymous viewers, every message for the owner, and otherwise only
// the viewer's own thread with the owner.
func (p *productService) GetOne(ctx context.Context, productID int, viewer models.Viewer) (*models.ProductDetail, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var messages []models.Message

	switch v := viewer.(type) {
	case models.AuthenticatedViewer:
		if v.UserID == product.UserID {
			messages, err = p.messageRepo.ListByProduct(ctx, productID)
		} else {
			messages, err = p.messageRepo.ListThread(ctx, productID, product.UserID, v.UserID)
		}
	default:
		return product, nil
	}
	if err != nil {
		return nil, err
	}

	if messages == nil {
		messages = []models.Message{}
	}
	product.Messages = &messages

	return product, nil
}

// CheckAuthor reports repository.ErrNotFound for a missing product before
// it reports ErrNotAuthor for someone else's.
func (p *productService) CheckAuthor(ctx context.Context, productID, userID int) error {
	ownerID, err := p.productRepo.GetOwnerID(ctx, productID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		return ErrNotAuthor
	}

	return nil
}

func (p *productService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if len(req.Images) > models.MaxImages {
		return nil, ErrTooManyImages
	}

	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		url, err := p.upload(ctx, img)
		if err != nil {
			return nil, err
		}
		images = append(images, url)
	}

	product := &models.Product{
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Images:      images,
	}

	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update fills free image slots with the uploaded files in order. A slot
// holding a marked URL has its old image deleted once the replacement is
// stored. Files beyond the free slots are ignored, and leftover free slots
// are dropped from the final sequence.
func (p *productService) Update(ctx context.Context, req UpdateProductRequest) error {
	if err := p.CheckAuthor(ctx, req.ProductID, req.UserID); err != nil {
		return err
	}

	if len(req.Images) > models.MaxImages || finalImageCount(req.UpdatedImages, len(req.Images)) > models.MaxImages {
		return ErrTooManyImages
	}

	stored, err := p.productRepo.GetImages(ctx, req.ProductID)
	if err != nil {
		return err
	}

	slots := append([]string(nil), req.UpdatedImages...)
	for _, img := range req.Images {
		idx := freeSlot(slots)
		if idx < 0 {
			break
		}

		url, err := p.upload(ctx, img)
		if err != nil {
			return err
		}

		if old, ok := strings.CutPrefix(slots[idx], replaceMarker); ok && slices.Contains(stored, old) {
			if err := p.storage.DeleteImage(ctx, old); err != nil {
				return err
			}
		}

		slots[idx] = url
	}

	images := make([]string, 0, len(slots))
	for _, slot := range slots {
		if !isFreeSlot(slot) {
			images = append(images, slot)
		}
	}

	product := &models.Product{
		ProductID:   req.ProductID,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Images:      images,
	}

	return p.productRepo.Update(ctx, product)
}

// Delete removes the product and then each of its stored images in turn.
func (p *productService) Delete(ctx context.Context, productID, userID int) error {
	if err := p.CheckAuthor(ctx, productID, userID); err != nil {
		return err
	}

	images, err := p.productRepo.Delete(ctx, productID)
	if err != nil {
		return err
	}

	for _, url := range images {
		if err := p.storage.DeleteImage(ctx, url); err != nil {
			return err
		}
	}

	return nil
}

func (p *productService) upload(ctx context.Context, img ImageUpload) (string, error) {
	file, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrUpload, err)
	}
	defer file.Close()

	return p.storage.UploadImage(ctx, img.FileName, file, img.Size)
}

func isFreeSlot(slot string) bool {
	return slot == "" || strings.HasPrefix(slot, replaceMarker)
}

func freeSlot(slots []string) int {
	for i, slot := range slots {
		if isFreeSlot(slot) {
			return i
		}
	}
	return -1
}

// finalImageCount is the length of the sequence Update would store.
func finalImageCount(slots []string, files int) int {
	kept, free := 0, 0
	for _, slot := range slots {
		if isFreeSlot(slot) {
			free++
		} else {
			kept++
		}
	}
	return kept + min(free, files)
}
