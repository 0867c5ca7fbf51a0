package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"marketAPI/internal/middleware"
	"marketAPI/internal/service"
)

// ProductForm holds the text fields of a multipart product form.
type ProductForm struct {
	Title       string `form:"title" validate:"required,min=4"`
	CategoryID  int    `form:"category_id" validate:"required,min=1,max=7"`
	Description string `form:"description" validate:"required,min=4"`
	Price       int    `form:"price" validate:"min=0,max=1000000000"`
	Location    string `form:"location" validate:"required,min=3"`
}

type UpdateProductForm struct {
	ProductForm
	UpdatedImages string `form:"updatedImages" validate:"required"`
}

type ProductIDResponse struct {
	ProductID int `json:"product_id"`
}

func pageRequest(r *http.Request) service.PageRequest {
	query := r.URL.Query()
	return service.PageRequest{
		Page:  service.ParsePage(query.Get("page")),
		Count: query.Get("count"),
	}
}

func pathInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handlers) GetRandomProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductService.Random(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, products, http.StatusOK)
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.ProductService.List(r.Context(), pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathInt(r, "category_id")
	if !ok {
		writeError(w, `"category_id" must be a number`, http.StatusBadRequest)
		return
	}

	page, err := h.ProductService.ListByCategory(r.Context(), categoryID, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var categoryID *int
	if raw := query.Get("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, `"category" must be a number`, http.StatusBadRequest)
			return
		}
		categoryID = &id
	}

	page, err := h.ProductService.Search(r.Context(), query.Get("q"), categoryID, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) GetUserProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	page, err := h.ProductService.ListByUser(r.Context(), userID, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathInt(r, "id")
	if !ok {
		writeError(w, "Product not found", http.StatusNotFound)
		return
	}

	product, err := h.ProductService.GetOne(r.Context(), productID, middleware.ViewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, product, http.StatusOK)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	if msg := h.parseForm(w, r); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	form, msg := readProductForm(r)
	if msg == "" {
		msg = h.validate(form)
	}
	if msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	product, err := h.ProductService.Create(r.Context(), service.CreateProductRequest{
		UserID:      userID,
		CategoryID:  form.CategoryID,
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Location:    form.Location,
		Images:      formImages(r),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProductIDResponse{ProductID: product.ProductID}, http.StatusOK)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	productID, ok := pathInt(r, "id")
	if !ok {
		writeError(w, "Product not found", http.StatusNotFound)
		return
	}

	if msg := h.parseForm(w, r); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	base, msg := readProductForm(r)
	form := UpdateProductForm{ProductForm: base, UpdatedImages: r.FormValue("updatedImages")}
	if msg == "" {
		msg = h.validate(form)
	}
	if msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	var updatedImages []string
	if err := json.Unmarshal([]byte(form.UpdatedImages), &updatedImages); err != nil {
		writeError(w, `"updatedImages" must be a JSON array of strings`, http.StatusBadRequest)
		return
	}

	err := h.ProductService.Update(r.Context(), service.UpdateProductRequest{
		ProductID:     productID,
		UserID:        userID,
		CategoryID:    form.CategoryID,
		Title:         form.Title,
		Description:   form.Description,
		Price:         form.Price,
		Location:      form.Location,
		UpdatedImages: updatedImages,
		Images:        formImages(r),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProductIDResponse{ProductID: productID}, http.StatusOK)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	productID, ok := pathInt(r, "id")
	if !ok {
		writeError(w, "Product not found", http.StatusNotFound)
		return
	}

	if err := h.ProductService.Delete(r.Context(), productID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Deleted"}, http.StatusOK)
}

// parseForm reads a multipart body, or a plain form when the request is
// not multipart. It returns a client-facing message on failure.
func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request) string {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	err := r.ParseMultipartForm(h.Cfg.MaxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Sprintf("File too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024))
		}
		return "Invalid form data"
	}

	return ""
}

func (h *Handlers) validate(form interface{}) string {
	if err := h.Validate.Struct(form); err != nil {
		return validationMessage(err)
	}
	return ""
}

func readProductForm(r *http.Request) (ProductForm, string) {
	form := ProductForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}

	var msg string
	if form.CategoryID, msg = formInt(r, "category_id"); msg != "" {
		return form, msg
	}
	if form.Price, msg = formInt(r, "price"); msg != "" {
		return form, msg
	}

	return form, ""
}

func formInt(r *http.Request, name string) (int, string) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, fmt.Sprintf("%q is required", name)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Sprintf("%q must be a number", name)
	}
	return n, ""
}

func formImages(r *http.Request) []service.ImageUpload {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File["images"]
	images := make([]service.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		images = append(images, service.ImageUpload{
			FileName: fh.Filename,
			Size:     fh.Size,
			Open:     openPart(fh),
		})
	}
	return images
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}
