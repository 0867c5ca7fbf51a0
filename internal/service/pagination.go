package service

import (
	"context"
	"errors"
	"math"
	"strconv"

	"marketAPI/internal/models"
)

// PageRequest carries the raw pagination query of a listing. Count is the
// total a client already knows; when set it is echoed back unchanged.
type PageRequest struct {
	Page  int
	Count string
}

// maxPage is the last page whose offset still fits in an int.
const maxPage = math.MaxInt/models.PageSize + 1

// ParsePage turns the page query value into a page number. Missing,
// malformed and non-positive values all mean the first page. Pages beyond
// maxPage are clamped to it and come back empty.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return maxPage
	}
	if err != nil || page < 1 {
		return 1
	}
	return min(page, maxPage)
}

func (p PageRequest) page() int {
	if p.Page < 1 {
		return 1
	}
	return min(p.Page, maxPage)
}

func (p PageRequest) offset() int {
	return (p.page() - 1) * models.PageSize
}

// resolveCount decides the count for a page of rows. A short first page
// already holds every match, so its length is the total. Otherwise a
// client supplied count wins, and only then is the store asked.
func resolveCount(ctx context.Context, req PageRequest, rows int, count func(ctx context.Context) (int, error)) (string, error) {
	if rows < models.PageSize && req.page() == 1 {
		return strconv.Itoa(rows), nil
	}

	if req.Count != "" {
		return req.Count, nil
	}

	total, err := count(ctx)
	if err != nil {
		return "", err
	}

	return strconv.Itoa(total), nil
}
